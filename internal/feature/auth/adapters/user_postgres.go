// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"commerce_backend/internal/feature/auth/domain"
	"commerce_backend/internal/feature/auth/domain/entity"
	"commerce_backend/internal/feature/auth/usecase"
)

// userPostgres はUserRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。検索系の操作はすべて
// is_active=trueのアカウントのみを対象とします。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// isUniqueViolation はストアの一意性制約違反かどうかを判定します。
func isUniqueViolation(err error) bool {
	// PostgreSQLエラー23505: ユニークキーの重複エントリ
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create はユーザーをデータベースに追加します。
// 一意性制約（メールアドレス、provider+id）に違反した場合、
// domain.ErrDuplicateAccountを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでアクティブなユーザーを取得します。
// ユーザーが存在しない（または非アクティブな）場合、domain.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByOAuth は(provider, provider_id)でアクティブなユーザーを取得します。
// ユーザーが存在しない（または非アクティブな）場合、domain.ErrUserNotFoundを返します。
func (r *userPostgres) FindByOAuth(ctx context.Context, provider, oauthID string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Where("oauth_provider = ? AND oauth_id = ? AND is_active = ?", provider, oauthID, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでアクティブなユーザーを取得します。
// ユーザーが存在しない（または非アクティブな）場合、domain.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update は既存ユーザーの変更を永続化します。
// 一意性制約に違反した場合、domain.ErrDuplicateAccountを返します。
func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

// Deactivate はユーザーを論理削除します。以降すべての検索から除外されます。
func (r *userPostgres) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
