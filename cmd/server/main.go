package main

import (
	"context"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"commerce_backend/internal/app/di"
	"commerce_backend/internal/app/router"
	authadapters "commerce_backend/internal/feature/auth/adapters"
	authhandler "commerce_backend/internal/feature/auth/transport/handler"
	authusecase "commerce_backend/internal/feature/auth/usecase"
	itemadapters "commerce_backend/internal/feature/items/adapters"
	itemhandler "commerce_backend/internal/feature/items/transport/handler"
	itemusecase "commerce_backend/internal/feature/items/usecase"
	"commerce_backend/internal/platform/config"
	"commerce_backend/internal/platform/db"
	platformhttp "commerce_backend/internal/platform/http"
	"commerce_backend/internal/platform/password"
	platformredis "commerce_backend/internal/platform/redis"
	"commerce_backend/internal/platform/token"
)

func main() {
	// 設定（起動時に一度だけ環境変数を読む）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// db
	gdb := db.Open(cfg.DatabaseURL, cfg.RunMigrations)

	// Redis（任意。なければstateストアはメモリにフォールバック）
	var rdb *redisv9.Client
	if addr := cfg.RedisAddr(); addr != "" {
		if tmp, err := platformredis.NewClient(addr, cfg.RedisPassword); err != nil {
			log.Println("[WARN] Redis unavailable. OAuth states held in memory.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// 外部API用HTTPクライアント（OAuthトークン交換など）
	httpClient := platformhttp.NewHTTPClient(10 * time.Second)

	// Repository
	userRepo := authadapters.NewUserPostgres(gdb)
	itemRepo := itemadapters.NewItemPostgres(gdb)

	// プラットフォーム部品
	hasher := password.NewHasher()
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL())
	states := di.NewStateStore(rdb)
	providers := di.NewOAuthRegistry(context.Background(), cfg, httpClient)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, codec, providers, states)
	itemUC := itemusecase.NewItemUsecase(itemRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, cfg.TokenTTL())
	itemH := itemhandler.NewItemHandler(itemUC)

	// ルータ生成
	r := router.NewRouter(authH, itemH, authUC)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
