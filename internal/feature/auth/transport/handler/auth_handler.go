// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"commerce_backend/internal/feature/auth/domain"
	"commerce_backend/internal/feature/auth/domain/entity"
	"commerce_backend/internal/feature/auth/transport/http/dto"
)

// AccessTokenCookie はセッショントークンを保持するクッキー名です。
// Authorizationヘッダーを付けられないブラウザフロー用の補助手段です。
const AccessTokenCookie = "access_token"

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	Register(ctx context.Context, email, password, displayName string) (*entity.User, error)
	// Login はユーザーを認証し、成功時に署名済みトークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// AuthorizationURL はOAuthプロバイダーの認可URLとCSRF stateを生成します。
	AuthorizationURL(ctx context.Context, provider string) (string, string, error)
	// LoginWithOAuth は認可コードを検証し、解決したアカウントのトークンを発行します。
	LoginWithOAuth(ctx context.Context, provider, code, state string) (string, *entity.User, error)
	// VerifyToken はセッショントークンを検証し、対象ユーザーを解決します。
	VerifyToken(ctx context.Context, token string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth     AuthUsecase
	tokenTTL time.Duration
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// tokenTTLはセッションクッキーの有効期間として使用されます。
func NewAuthHandler(auth AuthUsecase, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL}
}

// setSessionCookie はトークンをHttpOnlyクッキーとして設定します。
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
}

// clearSessionCookie はセッションクッキーを削除します。
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", false, true)
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - メールアドレス重複時は409を返却
// - 成功時は201でユーザー情報を返却（トークンは発行しない）
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			// 重複の内訳（パスワード/OAuth）は公開しない
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, dto.ErrorRes{Error: "account already exists"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserRes(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（ユーザー未検出・パスワード不一致を区別しない）
// - 無効化されたアカウントは403を返却
// - 成功時はトークン付きで200を返却し、HttpOnlyクッキーも設定
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: err.Error()})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid email or password"})
		case errors.Is(err, domain.ErrAccountDisabled):
			slog.Warn("login rejected for disabled account", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusForbidden, dto.ErrorRes{Error: "account disabled"})
		default:
			slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		}
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, dto.NewTokenRes(token, user))
}

// Logout はセッションクッキーを破棄します。
// トークン自体はステートレスなため、サーバー側の無効化は行いません。
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, dto.MessageRes{Message: "logged out"})
}

// Me は認証済みユーザー自身の情報を返します。
// AuthRequiredミドルウェアの背後に配置されることを前提とします。
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRes(user))
}

// OAuthAuthorize はOAuthプロバイダーの認可URLを返します。
// - プロバイダー未設定時は501を返却
// - 成功時は認可URLとCSRF stateを200で返却
func (h *AuthHandler) OAuthAuthorize(c *gin.Context) {
	provider := c.Param("provider")

	url, state, err := h.auth.AuthorizationURL(c.Request.Context(), provider)
	if err != nil {
		if errors.Is(err, domain.ErrOAuthNotConfigured) {
			c.JSON(http.StatusNotImplemented, dto.ErrorRes{Error: provider + " login is not configured"})
			return
		}
		slog.Error("authorize url generation failed", "provider", provider, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthorizeRes{AuthorizationURL: url, State: state})
}

// callbackParam はコールバックパラメーターをクエリから取得し、なければ
// フォームボディから取得します。Googleはクエリでリダイレクトするが、
// Appleはresponse_mode=form_postのためcode/stateがPOSTボディで届く。
func callbackParam(c *gin.Context, name string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return c.PostForm(name)
}

// OAuthCallback はOAuthプロバイダーからのリダイレクトを処理します。
// GET（クエリ）とPOST（form_post）の両方で呼ばれます。
// - code/state欠落時は400を返却
// - プロバイダー未設定時は501を返却
// - 交換・検証失敗時は失敗理由を区別せず401を返却
// - 成功時はトークン付きで200を返却し、HttpOnlyクッキーも設定
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := callbackParam(c, "code")
	state := callbackParam(c, "state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "code and state are required"})
		return
	}

	token, user, err := h.auth.LoginWithOAuth(c.Request.Context(), provider, code, state)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOAuthNotConfigured):
			c.JSON(http.StatusNotImplemented, dto.ErrorRes{Error: provider + " login is not configured"})
		case errors.Is(err, domain.ErrOAuthFailed):
			// 失敗の内訳（state不正/交換失敗/クレーム欠落）は公開しない
			slog.Warn("oauth login failed", "provider", provider, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "oauth login failed"})
		default:
			slog.Error("oauth login failed", "provider", provider, "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
		}
		return
	}

	slog.Info("oauth login successful", "provider", provider, "user_id", user.ID, "remote_addr", c.ClientIP())
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, dto.NewTokenRes(token, user))
}
