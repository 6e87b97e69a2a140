package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"commerce_backend/internal/feature/auth/domain/entity"
	"commerce_backend/internal/feature/auth/transport/http/dto"
)

// contextUserKey は認証済みユーザーを保持するginコンテキストのキーです。
const contextUserKey = "currentUser"

// AuthRequired はセッショントークンを検証し、認証済みユーザーのみに
// アクセスを制限するGinミドルウェアを返します。
// トークンはAuthorizationヘッダー（Bearer）またはセッションクッキーから
// 取得します。ヘッダーが優先されます。
func AuthRequired(auth AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorRes{Error: "not authenticated"})
			return
		}

		user, err := auth.VerifyToken(c.Request.Context(), tokenStr)
		if err != nil {
			// トークン不正とユーザー不在（無効化済み含む）を区別しない
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorRes{Error: "invalid or expired token"})
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// extractToken はリクエストからセッショントークンを取り出します。
func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// SetCurrentUser は認証済みユーザーをリクエストコンテキストに設定します。
func SetCurrentUser(c *gin.Context, user *entity.User) {
	c.Set(contextUserKey, user)
}

// CurrentUser はAuthRequiredが設定した認証済みユーザーを取得します。
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
