package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/siisjewelry/siis-api/internal/cache"
)

// Store 会话购物车存储。启用 Redis 时按会话键持久化 JSON，
// 否则退化为进程内存表（单机开发模式）。
type Store struct {
	ttl time.Duration

	mu    sync.RWMutex
	local map[string]*Cart
}

// NewStore 创建购物车存储
func NewStore(ttlHours int) *Store {
	if ttlHours <= 0 {
		ttlHours = 72
	}
	return &Store{
		ttl:   time.Duration(ttlHours) * time.Hour,
		local: make(map[string]*Cart),
	}
}

func cartKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}

// Get 读取会话购物车，不存在时返回空车
func (s *Store) Get(ctx context.Context, session string) (*Cart, error) {
	if session == "" {
		return New(), nil
	}
	if cache.Enabled() {
		var c Cart
		hit, err := cache.GetJSON(ctx, cartKey(session), &c)
		if err != nil {
			return nil, err
		}
		if !hit {
			return New(), nil
		}
		if c.Lines == nil {
			c.Lines = make([]Line, 0)
		}
		return &c, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.local[session]; ok {
		copied := &Cart{Lines: append([]Line(nil), c.Lines...)}
		return copied, nil
	}
	return New(), nil
}

// Save 写回会话购物车并刷新 TTL
func (s *Store) Save(ctx context.Context, session string, c *Cart) error {
	if session == "" || c == nil {
		return nil
	}
	if cache.Enabled() {
		return cache.SetJSON(ctx, cartKey(session), c, s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.local[session] = &Cart{Lines: append([]Line(nil), c.Lines...)}
	return nil
}

// Clear 清除会话购物车（登出与下单后调用）
func (s *Store) Clear(ctx context.Context, session string) error {
	if session == "" {
		return nil
	}
	if cache.Enabled() {
		return cache.Del(ctx, cartKey(session))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.local, session)
	return nil
}
