package cache

import (
	"sync"
	"time"
)

// Clock 返回当前时间，测试中可注入假时钟以避免依赖真实睡眠。
type Clock func() time.Time

// TTLCache 是一个带过期时间的单值缓存。
// 读路径用它吸收热点查询，过期判断基于注入的时钟。
type TTLCache[T any] struct {
	mu      sync.Mutex
	value   T
	ok      bool
	expires time.Time
	ttl     time.Duration
	now     Clock
}

// NewTTLCache 构造缓存。clock 为 nil 时使用 time.Now。
func NewTTLCache[T any](ttl time.Duration, clock Clock) *TTLCache[T] {
	if clock == nil {
		clock = time.Now
	}
	return &TTLCache[T]{ttl: ttl, now: clock}
}

// Get 返回缓存值；值不存在或已过期时第二个返回值为 false。
func (c *TTLCache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ok || c.now().After(c.expires) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set 写入缓存值并重置过期时间。
func (c *TTLCache[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.ok = true
	c.expires = c.now().Add(c.ttl)
}

// Invalidate 立即清空缓存，写路径更新数据后调用。
func (c *TTLCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.value = zero
	c.ok = false
}
