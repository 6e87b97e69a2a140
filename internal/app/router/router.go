// Package router はアプリケーションのHTTPルーティングを構成します。
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authhandler "commerce_backend/internal/feature/auth/transport/handler"
	itemhandler "commerce_backend/internal/feature/items/transport/handler"
	"commerce_backend/internal/platform/http/handler"
	"commerce_backend/internal/shared/ratelimiter"
)

// 認証エンドポイントのIPあたりの試行上限。総当たり攻撃の抑制用で、
// 正常なクライアントには届かない値に設定する。
const (
	credentialAttemptLimit  = 10
	credentialAttemptWindow = time.Minute
)

// rateLimit は上限超過時に429を返すミドルウェアです。
func rateLimit(l *ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// NewRouter はすべてのエンドポイントを登録したginエンジンを生成します。
func NewRouter(auth *authhandler.AuthHandler, items *itemhandler.ItemHandler, authUC authhandler.AuthUsecase) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")

	// パスワード試行を伴うエンドポイントのみレートリミットを適用
	credentials := rateLimit(ratelimiter.New(credentialAttemptLimit, credentialAttemptWindow))

	// 認証フロー
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", credentials, auth.Register)
		authGroup.POST("/login", credentials, auth.Login)
		authGroup.POST("/logout", auth.Logout)
		authGroup.GET("/me", authhandler.AuthRequired(authUC), auth.Me)

		// OAuthフロー（:providerはgoogle/apple）
		authGroup.GET("/:provider", auth.OAuthAuthorize)
		authGroup.GET("/:provider/callback", auth.OAuthCallback)
		// Appleはresponse_mode=form_postを使い、code/stateをPOSTボディで届ける
		authGroup.POST("/:provider/callback", auth.OAuthCallback)
	}

	// 認証必須のルート
	itemGroup := api.Group("/items")
	itemGroup.Use(authhandler.AuthRequired(authUC))
	{
		itemGroup.POST("", items.Create)
		itemGroup.GET("", items.List)
		itemGroup.GET("/:id", items.Get)
		itemGroup.PUT("/:id", items.Update)
		itemGroup.DELETE("/:id", items.Delete)
	}

	return r
}
