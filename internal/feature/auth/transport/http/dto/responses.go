package dto

import (
	"time"

	"commerce_backend/internal/feature/auth/domain/entity"
)

// UserRes はAPIレスポンス用のユーザー表現です。
// パスワードハッシュやOAuth内部IDなどの認証情報は一切含みません。
type UserRes struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserRes はエンティティからUserResを組み立てます。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

// TokenRes はログイン成功時のレスポンスを表します。
type TokenRes struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserRes `json:"user"`
}

// NewTokenRes はbearerトークンレスポンスを組み立てます。
func NewTokenRes(token string, u *entity.User) TokenRes {
	return TokenRes{
		AccessToken: token,
		TokenType:   "bearer",
		User:        NewUserRes(u),
	}
}

// AuthorizeRes はOAuth認可URLエンドポイントのレスポンスを表します。
type AuthorizeRes struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

// ErrorRes はエラーレスポンスの共通形式です。
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes は成功メッセージのみのレスポンスです。
type MessageRes struct {
	Message string `json:"message"`
}
