package cache

import (
	"sync"
	"time"

	"IslandKingdoms/internal/shared/utils"
)

// TTLCache 是带过期时间和显式失效的查询缓存。
//
// 世界视图的聚合查询（岛屿统计、排行榜）开销大且容忍短暂陈旧，
// 走这里缓存。key 必须带上世界/会话维度，禁止退化成进程级裸变量
// 被多个世界视图共享。
type TTLCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	clock utils.Clock
	items map[string]entry
}

type entry struct {
	value     any
	expiresAt time.Time
}

func NewTTLCache(ttl time.Duration, clock utils.Clock) *TTLCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	return &TTLCache{
		ttl:   ttl,
		clock: clock,
		items: make(map[string]entry),
	}
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || c.clock.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: c.clock.Now().Add(c.ttl)}
}

// Invalidate 显式失效一个 key（对应实体被写入后调用）。
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// InvalidateAll 清空缓存（世界重置/管理操作后调用）。
func (c *TTLCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}
