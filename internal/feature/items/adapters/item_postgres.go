// Package adapters はitemsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commerce_backend/internal/feature/items/domain"
	"commerce_backend/internal/feature/items/domain/entity"
	"commerce_backend/internal/feature/items/usecase"
)

// itemPostgres はItemRepositoryインターフェースのPostgreSQL実装です。
type itemPostgres struct {
	db *gorm.DB
}

var _ usecase.ItemRepository = (*itemPostgres)(nil)

// NewItemPostgres は指定されたDB接続でitemPostgresの新しいインスタンスを生成します。
func NewItemPostgres(db *gorm.DB) *itemPostgres {
	return &itemPostgres{db: db}
}

// Create はアイテムをデータベースに追加します。
func (r *itemPostgres) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID はIDでアイテムを取得します。
func (r *itemPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List は作成日時の降順でアイテムとフィルター適用後の総件数を返します。
func (r *itemPostgres) List(ctx context.Context, ownerID *uuid.UUID, offset, limit int) ([]entity.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Item{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Item
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update は既存アイテムの変更を永続化します。
func (r *itemPostgres) Update(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete はアイテムを物理削除します。
func (r *itemPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
