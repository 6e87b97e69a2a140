// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health は /healthz を処理します。認証やストレージに依存しない軽量な
// 導通確認で、ロードバランサーやデプロイ後の疎通チェックから叩かれます。
func Health(c *gin.Context) {
	// ヘルスチェックの結果はキャッシュさせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
