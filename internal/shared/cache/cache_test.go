package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestTTLCache_过期后不可读(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewTTLCache(30*time.Second, clock)

	c.Set("island:7:stats", 42)
	if v, ok := c.Get("island:7:stats"); !ok || v != 42 {
		t.Fatalf("期望命中缓存，got=%v ok=%v", v, ok)
	}

	clock.now = clock.now.Add(31 * time.Second)
	if _, ok := c.Get("island:7:stats"); ok {
		t.Fatalf("期望 TTL 过期后未命中")
	}
}

func TestTTLCache_显式失效(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := NewTTLCache(time.Minute, clock)

	c.Set("island:7:stats", 1)
	c.Invalidate("island:7:stats")
	if _, ok := c.Get("island:7:stats"); ok {
		t.Fatalf("期望 Invalidate 后未命中")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	c.InvalidateAll()
	if _, ok := c.Get("a"); ok {
		t.Fatalf("期望 InvalidateAll 清空")
	}
}
