package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commerce_backend/internal/feature/auth/domain"
	"commerce_backend/internal/feature/auth/domain/entity"
)

// AccountResolver はアイデンティティクレームをアカウントレコードに解決します。
// OAuthログインの検索・リンク・作成ロジックと、パスワードログインの
// メールアドレス検索を担当します。
type AccountResolver struct {
	users UserRepository
}

// NewAccountResolver はAccountResolverの新しいインスタンスを生成します。
func NewAccountResolver(users UserRepository) *AccountResolver {
	return &AccountResolver{users: users}
}

// ResolveOAuth はOAuthアイデンティティを既存アカウントに解決するか、
// 新しいアカウントを作成します。
//
// 解決順序は意図的です:
//  1. (provider, provider_id) での検索。一致すればそのまま返す。
//     メールアドレスの再同期は行わない。
//  2. メールアドレスでの検索。一致すればOAuthフィールドをバックフィル
//     してアカウントをリンクする（パスワード登録済みユーザーが同じ
//     メールのOAuthでサインインすると両方式が使えるようになる）。
//     display_name/avatar_urlは空の場合のみ埋め、ユーザーが設定した
//     値は上書きしない。パスワードハッシュには触れない。
//  3. どちらも一致しなければパスワード認証情報なしの新規アカウントを
//     作成する。
//
// provider-idの一致をメールより先に見るのは、別のOAuthプロバイダーが
// 初回ログイン時のメール衝突でアカウントを乗っ取るのを防ぐためです。
func (r *AccountResolver) ResolveOAuth(ctx context.Context, identity *entity.OAuthIdentity) (*entity.User, error) {
	user, err := r.users.FindByOAuth(ctx, identity.Provider, identity.ProviderID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up oauth identity: %w", err)
	}

	email := NormalizeEmail(identity.Email)

	user, err = r.users.FindByEmail(ctx, email)
	if err == nil {
		// アカウントリンク: OAuthフィールドをバックフィルする
		provider := identity.Provider
		providerID := identity.ProviderID
		user.OAuthProvider = &provider
		user.OAuthID = &providerID
		if user.DisplayName == "" && identity.DisplayName != "" {
			user.DisplayName = identity.DisplayName
		}
		if user.AvatarURL == "" && identity.AvatarURL != "" {
			user.AvatarURL = identity.AvatarURL
		}
		if err := r.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to link oauth identity: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up account by email: %w", err)
	}

	// 新規アカウント作成（パスワード認証情報なし）
	provider := identity.Provider
	providerID := identity.ProviderID
	user = &entity.User{
		Email:         email,
		OAuthProvider: &provider,
		OAuthID:       &providerID,
		DisplayName:   identity.DisplayName,
		AvatarURL:     identity.AvatarURL,
		IsActive:      true,
	}
	if err := r.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create oauth account: %w", err)
	}
	return user, nil
}

// ResolvePassword はアクティブなアカウントをメールアドレスで検索します。
// ログインと登録時の重複チェックに使用されます。
func (r *AccountResolver) ResolvePassword(ctx context.Context, email string) (*entity.User, error) {
	return r.users.FindByEmail(ctx, NormalizeEmail(email))
}

// NormalizeEmail はメールアドレスを検索・保存用に正規化します。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
