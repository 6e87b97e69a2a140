package di

import (
	"github.com/redis/go-redis/v9"

	"commerce_backend/internal/feature/auth/usecase"
	"commerce_backend/internal/platform/statestore"
)

// NewStateStore creates a StateStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to in-process memory, which only means states do
// not survive a restart.
func NewStateStore(rdb *redis.Client) usecase.StateStore {
	if rdb != nil {
		return statestore.NewStateRedis(rdb, "oauth_state", statestore.DefaultTTL)
	}
	return statestore.NewStateMemory(statestore.DefaultTTL)
}
