package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"commerce_backend/internal/feature/items/domain"
	"commerce_backend/internal/feature/items/domain/entity"
)

// mockItemRepository is a mock implementation of the ItemRepository interface.
type mockItemRepository struct {
	CreateFunc   func(ctx context.Context, item *entity.Item) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	ListFunc     func(ctx context.Context, ownerID *uuid.UUID, offset, limit int) ([]entity.Item, int64, error)
	UpdateFunc   func(ctx context.Context, item *entity.Item) error
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrItemNotFound
}

func (m *mockItemRepository) List(ctx context.Context, ownerID *uuid.UUID, offset, limit int) ([]entity.Item, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *entity.Item) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestItemUsecase_Create(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("success", func(t *testing.T) {
		var created *entity.Item
		repo := &mockItemRepository{
			CreateFunc: func(ctx context.Context, item *entity.Item) error {
				created = item
				return nil
			},
		}
		uc := NewItemUsecase(repo)

		price := 12.5
		item, err := uc.Create(ctx, owner, "  Mug  ", "ceramic", &price)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil {
			t.Fatal("item was not persisted")
		}
		if item.Name != "Mug" {
			t.Errorf("name not trimmed: %q", item.Name)
		}
		if item.UserID != owner {
			t.Error("owner not set from the current user")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		uc := NewItemUsecase(&mockItemRepository{})

		_, err := uc.Create(ctx, owner, "   ", "", nil)

		if !errors.Is(err, domain.ErrItemInvalid) {
			t.Errorf("expected ErrItemInvalid, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		uc := NewItemUsecase(&mockItemRepository{})

		_, err := uc.Create(ctx, owner, strings.Repeat("x", 256), "", nil)

		if !errors.Is(err, domain.ErrItemInvalid) {
			t.Errorf("expected ErrItemInvalid, got %v", err)
		}
	})

	t.Run("negative price", func(t *testing.T) {
		uc := NewItemUsecase(&mockItemRepository{})

		price := -1.0
		_, err := uc.Create(ctx, owner, "Mug", "", &price)

		if !errors.Is(err, domain.ErrItemInvalid) {
			t.Errorf("expected ErrItemInvalid, got %v", err)
		}
	})
}

// TestItemUsecase_List_Pagination はpage/per_pageの正規化を検証します。
func TestItemUsecase_List_Pagination(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		page, perPage  int
		wantOffset     int
		wantLimit      int
		wantPage       int
	}{
		{name: "defaults", page: 0, perPage: 0, wantOffset: 0, wantLimit: 20, wantPage: 1},
		{name: "negative page clamps to 1", page: -5, perPage: 10, wantOffset: 0, wantLimit: 10, wantPage: 1},
		{name: "per_page below range clamps to 1", page: 1, perPage: -3, wantOffset: 0, wantLimit: 1, wantPage: 1},
		{name: "per_page above range clamps to 100", page: 1, perPage: 500, wantOffset: 0, wantLimit: 100, wantPage: 1},
		{name: "offset follows page", page: 3, perPage: 20, wantOffset: 40, wantLimit: 20, wantPage: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOffset, gotLimit int
			repo := &mockItemRepository{
				ListFunc: func(ctx context.Context, ownerID *uuid.UUID, offset, limit int) ([]entity.Item, int64, error) {
					gotOffset, gotLimit = offset, limit
					return nil, 0, nil
				},
			}
			uc := NewItemUsecase(repo)

			page, err := uc.List(ctx, nil, tt.page, tt.perPage)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotOffset != tt.wantOffset || gotLimit != tt.wantLimit {
				t.Errorf("got offset=%d limit=%d, want offset=%d limit=%d", gotOffset, gotLimit, tt.wantOffset, tt.wantLimit)
			}
			if page.Page != tt.wantPage {
				t.Errorf("got page %d, want %d", page.Page, tt.wantPage)
			}
		})
	}
}

func TestItemPage_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		page     ItemPage
		hasNext  bool
		hasPrev  bool
	}{
		{name: "single page", page: ItemPage{Total: 5, Page: 1, PerPage: 20}, hasNext: false, hasPrev: false},
		{name: "first of many", page: ItemPage{Total: 45, Page: 1, PerPage: 20}, hasNext: true, hasPrev: false},
		{name: "middle", page: ItemPage{Total: 45, Page: 2, PerPage: 20}, hasNext: true, hasPrev: true},
		{name: "last", page: ItemPage{Total: 45, Page: 3, PerPage: 20}, hasNext: false, hasPrev: true},
		{name: "exact boundary", page: ItemPage{Total: 40, Page: 2, PerPage: 20}, hasNext: false, hasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.HasNext(); got != tt.hasNext {
				t.Errorf("HasNext() = %v, want %v", got, tt.hasNext)
			}
			if got := tt.page.HasPrev(); got != tt.hasPrev {
				t.Errorf("HasPrev() = %v, want %v", got, tt.hasPrev)
			}
		})
	}
}

func TestItemUsecase_Update(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	itemID := uuid.New()

	ownedItem := func() *entity.Item {
		return &entity.Item{ID: itemID, Name: "Before", UserID: owner}
	}

	t.Run("owner can update", func(t *testing.T) {
		var updated *entity.Item
		repo := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
				return ownedItem(), nil
			},
			UpdateFunc: func(ctx context.Context, item *entity.Item) error {
				updated = item
				return nil
			},
		}
		uc := NewItemUsecase(repo)

		item, err := uc.Update(ctx, owner, itemID, "After", "new desc", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("update was not persisted")
		}
		if item.Name != "After" || item.Description != "new desc" {
			t.Errorf("fields not applied: %+v", item)
		}
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		repo := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
				return ownedItem(), nil
			},
			UpdateFunc: func(ctx context.Context, item *entity.Item) error {
				t.Error("update must not be called for a non-owner")
				return nil
			},
		}
		uc := NewItemUsecase(repo)

		_, err := uc.Update(ctx, stranger, itemID, "After", "", nil)

		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("whitespace-only name", func(t *testing.T) {
		repo := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
				t.Error("lookup must not happen before validation")
				return ownedItem(), nil
			},
		}
		uc := NewItemUsecase(repo)

		_, err := uc.Update(ctx, owner, itemID, "   ", "", nil)

		if !errors.Is(err, domain.ErrItemInvalid) {
			t.Errorf("expected ErrItemInvalid, got %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		uc := NewItemUsecase(&mockItemRepository{})

		_, err := uc.Update(ctx, owner, uuid.New(), "After", "", nil)

		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestItemUsecase_Delete(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	itemID := uuid.New()

	t.Run("owner can delete", func(t *testing.T) {
		deleted := false
		repo := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
				return &entity.Item{ID: itemID, Name: "Doomed", UserID: owner}, nil
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}
		uc := NewItemUsecase(repo)

		if err := uc.Delete(ctx, owner, itemID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("delete was not persisted")
		}
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		repo := &mockItemRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
				return &entity.Item{ID: itemID, Name: "Doomed", UserID: owner}, nil
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				t.Error("delete must not be called for a non-owner")
				return nil
			},
		}
		uc := NewItemUsecase(repo)

		err := uc.Delete(ctx, stranger, itemID)

		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		uc := NewItemUsecase(&mockItemRepository{})

		err := uc.Delete(ctx, owner, uuid.New())

		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}
