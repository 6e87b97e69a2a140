package adapters

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"commerce_backend/internal/feature/items/domain"
	"commerce_backend/internal/feature/items/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Item{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func createTestItem(t *testing.T, repo *itemPostgres, owner uuid.UUID, name string) *entity.Item {
	t.Helper()

	item := &entity.Item{Name: name, UserID: owner}
	require.NoError(t, repo.Create(context.Background(), item))
	return item
}

func TestItemPostgres_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemPostgres(db)
	owner := uuid.New()

	price := 19.99
	item := &entity.Item{
		Name:        "Ceramic Mug",
		Description: "Handmade",
		Price:       &price,
		UserID:      owner,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NotEqual(t, uuid.Nil, item.ID, "ID is not set")

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Mug", found.Name)
	assert.Equal(t, owner, found.UserID)
	require.NotNil(t, found.Price)
	assert.Equal(t, 19.99, *found.Price)
}

func TestItemPostgres_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemPostgres(db)

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemPostgres_List(t *testing.T) {
	t.Run("newest first with total count", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemPostgres(db)
		owner := uuid.New()

		// Explicit timestamps: SQLite clock precision can collapse inserts
		// done in the same millisecond.
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 3; i++ {
			item := &entity.Item{
				ID:        uuid.New(),
				Name:      fmt.Sprintf("item-%d", i),
				UserID:    owner,
				CreatedAt: base.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, db.Create(item).Error)
		}

		items, total, err := repo.List(context.Background(), nil, 0, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, items, 3)
		assert.Equal(t, "item-2", items[0].Name, "newest item comes first")
		assert.Equal(t, "item-0", items[2].Name)
	})

	t.Run("owner filter", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemPostgres(db)
		alice, bob := uuid.New(), uuid.New()

		createTestItem(t, repo, alice, "alice-1")
		createTestItem(t, repo, alice, "alice-2")
		createTestItem(t, repo, bob, "bob-1")

		items, total, err := repo.List(context.Background(), &alice, 0, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
		for _, item := range items {
			assert.Equal(t, alice, item.UserID)
		}
	})

	t.Run("offset and limit", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemPostgres(db)
		owner := uuid.New()

		for i := 0; i < 5; i++ {
			createTestItem(t, repo, owner, fmt.Sprintf("item-%d", i))
		}

		items, total, err := repo.List(context.Background(), nil, 2, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total, "total ignores pagination")
		assert.Len(t, items, 2)
	})
}

func TestItemPostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemPostgres(db)
	owner := uuid.New()

	item := createTestItem(t, repo, owner, "Before")

	price := 5.0
	item.Name = "After"
	item.Price = &price
	require.NoError(t, repo.Update(context.Background(), item))

	found, err := repo.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Name)
	require.NotNil(t, found.Price)
	assert.Equal(t, 5.0, *found.Price)
}

func TestItemPostgres_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemPostgres(db)

		item := createTestItem(t, repo, uuid.New(), "Doomed")

		require.NoError(t, repo.Delete(context.Background(), item.ID))

		_, err := repo.FindByID(context.Background(), item.ID)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemPostgres(db)

		err := repo.Delete(context.Background(), uuid.New())

		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}
