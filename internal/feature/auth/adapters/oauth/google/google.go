// Package google はGoogle OAuthプロバイダーのアダプターを提供します。
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"commerce_backend/internal/feature/auth/domain/entity"
	"commerce_backend/internal/feature/auth/usecase"
)

// ProviderがOAuthProviderを実装していることをコンパイル時に検証します。
var _ usecase.OAuthProvider = (*Provider)(nil)

const (
	providerName = "google"

	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// endpoint はGoogleの認可・トークンエンドポイントです。
var endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// Provider はGoogleのOAuthフローを実装します。
// 認可コードをアクセストークンと交換し、userinfoエンドポイントから
// プロフィールを取得します。
type Provider struct {
	cfg    *oauth2.Config
	client *http.Client
}

// New は指定されたクライアント認証情報とHTTPクライアントでProviderの
// 新しいインスタンスを生成します。
func New(clientID, clientSecret, redirectURL string, client *http.Client) *Provider {
	return &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		client: client,
	}
}

// Name はプロバイダー識別子を返します。
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL は認可リダイレクト用のURLを生成します。
func (p *Provider) AuthCodeURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// userInfo はGoogleのuserinfoエンドポイントのレスポンスを表します。
type userInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange は認可コードをトークンと交換し、userinfoエンドポイントから
// サインインしたユーザーのアイデンティティを取得します。
func (p *Provider) Exchange(ctx context.Context, code string) (*entity.OAuthIdentity, error) {
	// oauth2パッケージにタイムアウト付きクライアントを使わせる
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("google userinfo http %d", res.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("google userinfo decode failed: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("google userinfo missing required fields")
	}

	return &entity.OAuthIdentity{
		Provider:    providerName,
		ProviderID:  info.ID,
		Email:       info.Email,
		DisplayName: info.Name,
		AvatarURL:   info.Picture,
	}, nil
}
