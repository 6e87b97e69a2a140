// Package oauth は外部OAuthプロバイダーのレジストリを提供します。
package oauth

import (
	"commerce_backend/internal/feature/auth/usecase"
)

// Registry は設定済みプロバイダーを名前で管理します。
// 認証情報が設定されていないプロバイダーは登録されず、検索時に
// 見つからないことで「未設定」条件として扱われます。
type Registry struct {
	providers map[string]usecase.OAuthProvider
}

// RegistryがOAuthProviderRegistryを実装していることをコンパイル時に検証します。
var _ usecase.OAuthProviderRegistry = (*Registry)(nil)

// NewRegistry は空のRegistryを生成します。
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]usecase.OAuthProvider)}
}

// Register はプロバイダーを登録します。
func (r *Registry) Register(p usecase.OAuthProvider) {
	r.providers[p.Name()] = p
}

// Get は名前でプロバイダーを取得します。未登録の場合はfalseを返します。
func (r *Registry) Get(name string) (usecase.OAuthProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}
