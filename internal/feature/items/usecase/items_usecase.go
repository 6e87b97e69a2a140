// Package usecase はitemsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"commerce_backend/internal/feature/items/domain"
	"commerce_backend/internal/feature/items/domain/entity"
)

const (
	// defaultPerPage はper_page未指定時のページサイズです。
	defaultPerPage = 20

	// maxPerPage は1ページあたりの最大件数です。
	maxPerPage = 100

	// maxNameLength はアイテム名の最大文字数です。
	maxNameLength = 255
)

// ItemRepository はアイテムの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ItemRepository interface {
	// Create は新しいアイテムをストレージに永続化します。
	Create(ctx context.Context, item *entity.Item) error

	// FindByID はIDでアイテムを取得します。
	// 存在しない場合、domain.ErrItemNotFoundを返します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// List は作成日時の降順でアイテムを返します。ownerIDが指定された
	// 場合はそのユーザーのアイテムのみを対象とし、フィルター適用後の
	// 総件数も返します。
	List(ctx context.Context, ownerID *uuid.UUID, offset, limit int) ([]entity.Item, int64, error)

	// Update は既存アイテムの変更を永続化します。
	Update(ctx context.Context, item *entity.Item) error

	// Delete はアイテムを削除します。
	// 存在しない場合、domain.ErrItemNotFoundを返します。
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemPage はページネーション付きのアイテム一覧です。
type ItemPage struct {
	Items   []entity.Item
	Total   int64
	Page    int
	PerPage int
}

// HasNext は次のページが存在するかを返します。
func (p *ItemPage) HasNext() bool {
	return int64(p.Page*p.PerPage) < p.Total
}

// HasPrev は前のページが存在するかを返します。
func (p *ItemPage) HasPrev() bool {
	return p.Page > 1
}

// ItemUsecase はアイテム操作のビジネスロジックを提供します。
// 読み取りは全ユーザーに公開され、書き込みは所有者のみに制限されます。
type ItemUsecase struct {
	repo ItemRepository
}

// NewItemUsecase はItemUsecaseの新しいインスタンスを生成します。
func NewItemUsecase(repo ItemRepository) *ItemUsecase {
	return &ItemUsecase{repo: repo}
}

// validateName はアイテム名を検証し、前後の空白を除去して返します。
// 検証エラーはdomain.ErrItemInvalidをラップして返します。
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrItemInvalid)
	}
	if len(name) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", domain.ErrItemInvalid, maxNameLength)
	}
	return name, nil
}

// Create は現在のユーザーを所有者とする新しいアイテムを作成します。
func (u *ItemUsecase) Create(ctx context.Context, ownerID uuid.UUID, name, description string, price *float64) (*entity.Item, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if price != nil && *price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrItemInvalid)
	}

	item := &entity.Item{
		Name:        name,
		Description: description,
		Price:       price,
		UserID:      ownerID,
	}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// Get はIDでアイテムを取得します。読み取りは所有者以外にも公開されます。
func (u *ItemUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	return u.repo.FindByID(ctx, id)
}

// List はページネーション付きでアイテム一覧を返します。
// pageは1以上に、perPageは[1,100]に正規化されます（0はデフォルト値）。
// ownerIDが指定された場合はそのユーザーのアイテムのみを返します。
func (u *ItemUsecase) List(ctx context.Context, ownerID *uuid.UUID, page, perPage int) (*ItemPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	offset := (page - 1) * perPage
	items, total, err := u.repo.List(ctx, ownerID, offset, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return &ItemPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Update は所有者のアイテムを更新します。
// アイテムが存在しない場合も所有者でない場合もdomain.ErrItemNotFoundを
// 返し、他ユーザーのアイテムの存在を漏らしません。
func (u *ItemUsecase) Update(ctx context.Context, ownerID, itemID uuid.UUID, name, description string, price *float64) (*entity.Item, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if price != nil && *price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrItemInvalid)
	}

	item, err := u.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsOwnedBy(ownerID) {
		return nil, domain.ErrItemNotFound
	}

	item.Name = name
	item.Description = description
	item.Price = price
	if err := u.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// Delete は所有者のアイテムを削除します。
// 所有者でない場合はdomain.ErrItemNotFoundを返します。
func (u *ItemUsecase) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	item, err := u.repo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.IsOwnedBy(ownerID) {
		return domain.ErrItemNotFound
	}
	return u.repo.Delete(ctx, itemID)
}
