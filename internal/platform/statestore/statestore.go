// Package statestore persists single-use OAuth CSRF states.
//
// A state is written before redirecting the user to the provider and must be
// presented back exactly once on the callback. Consuming a state removes it,
// so a replayed callback fails.
package statestore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"commerce_backend/internal/feature/auth/usecase"
)

// DefaultTTL is how long an issued state stays consumable. The OAuth
// redirect round-trip completes in seconds; anything older is stale.
const DefaultTTL = 5 * time.Minute

// StateRedis implements usecase.StateStore using Redis.
// TTL expiry is handled by Redis itself.
type StateRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.StateStore = (*StateRedis)(nil)

// NewStateRedis creates a new StateRedis instance.
func NewStateRedis(client *redis.Client, prefix string, ttl time.Duration) *StateRedis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StateRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// stateKey returns the Redis key for a state.
func (r *StateRedis) stateKey(state string) string {
	return fmt.Sprintf("%s:%s", r.prefix, state)
}

// Put stores a state with the configured TTL.
func (r *StateRedis) Put(ctx context.Context, state string) error {
	if err := r.client.Set(ctx, r.stateKey(state), "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store oauth state: %w", err)
	}
	return nil
}

// Consume atomically checks and deletes a state. It returns true only for a
// state that was stored, has not expired and has not been consumed before.
func (r *StateRedis) Consume(ctx context.Context, state string) (bool, error) {
	err := r.client.GetDel(ctx, r.stateKey(state)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return true, nil
}

// StateMemory is an in-process usecase.StateStore used when Redis is not
// configured. States do not survive a restart, which only forces the user
// back through the authorize step.
type StateMemory struct {
	mu      sync.Mutex
	expires map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

var _ usecase.StateStore = (*StateMemory)(nil)

// NewStateMemory creates a new StateMemory instance.
func NewStateMemory(ttl time.Duration) *StateMemory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &StateMemory{
		expires: make(map[string]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores a state with the configured TTL. Expired entries are swept
// opportunistically so the map does not grow without bound.
func (m *StateMemory) Put(_ context.Context, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for s, exp := range m.expires {
		if now.After(exp) {
			delete(m.expires, s)
		}
	}
	m.expires[state] = now.Add(m.ttl)
	return nil
}

// Consume atomically checks and deletes a state.
func (m *StateMemory) Consume(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.expires[state]
	if !ok {
		return false, nil
	}
	delete(m.expires, state)
	if m.now().After(exp) {
		return false, nil
	}
	return true, nil
}
