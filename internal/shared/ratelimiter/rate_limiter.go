package ratelimiter

import (
	"sync"
	"time"
)

// Limiter は、キーごとの操作頻度を固定ウィンドウで制限します。
// ログインなどの認証エンドポイントへの総当たり攻撃の抑制に使用します。
type Limiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
	now      func() time.Time
}

type window struct {
	count int
	start time.Time
}

// New は新しいLimiterのインスタンスを生成します。
func New(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow はキーの操作が上限内かを判定し、カウントを進めます。
// 上限超過時はfalseを返します。待機はしません（ハンドラーが429を返す）。
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// 期限切れウィンドウの掃除。キー数はクライアント数に比例するため
	// アクセスのたびに全走査しても問題にならない規模に留まる。
	for k, w := range l.windows {
		if now.Sub(w.start) >= l.interval {
			delete(l.windows, k)
		}
	}

	w, ok := l.windows[key]
	if !ok {
		l.windows[key] = &window{count: 1, start: now}
		return true
	}

	w.count++
	return w.count <= l.limit
}
