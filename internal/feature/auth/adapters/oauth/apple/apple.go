// Package apple はSign in with Appleのアダプターを提供します。
package apple

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"commerce_backend/internal/feature/auth/domain/entity"
	"commerce_backend/internal/feature/auth/usecase"
)

// ProviderがOAuthProviderを実装していることをコンパイル時に検証します。
var _ usecase.OAuthProvider = (*Provider)(nil)

const (
	providerName = "apple"

	issuerURL = "https://appleid.apple.com"
)

// endpoint はAppleの認可・トークンエンドポイントです。
var endpoint = oauth2.Endpoint{
	AuthURL:  "https://appleid.apple.com/auth/authorize",
	TokenURL: "https://appleid.apple.com/auth/token",
}

// Provider はAppleのOAuthフローを実装します。
// Appleはuserinfoエンドポイントを提供しないため、トークンレスポンスの
// IDトークンからアイデンティティを取得します。IDトークンの署名は
// Appleの公開鍵で検証してからクレームを信頼します。
type Provider struct {
	cfg      *oauth2.Config
	verifier *oidc.IDTokenVerifier
	client   *http.Client
}

// New は指定されたクライアント認証情報とHTTPクライアントでProviderの
// 新しいインスタンスを生成します。OIDCディスカバリーで署名鍵を取得
// するため失敗することがあります。
func New(ctx context.Context, clientID, clientSecret, redirectURL string, client *http.Client) (*Provider, error) {
	ctx = oidc.ClientContext(ctx, client)

	oidcProvider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init apple oidc provider: %w", err)
	}

	return &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"name", "email"},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: clientID}),
		client:   client,
	}, nil
}

// Name はプロバイダー識別子を返します。
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL は認可リダイレクト用のURLを生成します。
// Appleはスコープ付きリクエストにresponse_mode=form_postを要求します。
func (p *Provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "form_post"))
}

// Exchange は認可コードをトークンと交換し、検証済みIDトークンから
// サインインしたユーザーのアイデンティティを取得します。
func (p *Provider) Exchange(ctx context.Context, code string) (*entity.OAuthIdentity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("apple token exchange failed: %w", err)
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("apple did not return id_token")
	}

	// 署名を検証せずにペイロードを信頼しない
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("apple id_token verification failed: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("apple id_token claims parse failed: %w", err)
	}
	if idToken.Subject == "" || claims.Email == "" {
		return nil, errors.New("apple id_token missing required claims")
	}

	return &entity.OAuthIdentity{
		Provider:   providerName,
		ProviderID: idToken.Subject,
		Email:      claims.Email,
	}, nil
}
