package utility

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryCacheService(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewMemoryCacheServiceWithClock(clock.Now)
	mem := svc.(*memoryCacheService)

	t.Run("不存在的键返回空字符串", func(t *testing.T) {
		val, err := svc.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, val)
	})

	t.Run("未过期时可以读到", func(t *testing.T) {
		require.NoError(t, svc.Set(ctx, "k", "v", time.Minute))
		clock.Advance(59 * time.Second)
		val, err := svc.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", val)
	})

	t.Run("过期后读取时被删除", func(t *testing.T) {
		clock.Advance(time.Second)
		val, err := svc.Get(ctx, "k")
		require.NoError(t, err)
		assert.Empty(t, val)
		assert.Equal(t, 0, mem.Len())
	})

	t.Run("零过期时间表示永不过期", func(t *testing.T) {
		require.NoError(t, svc.Set(ctx, "forever", "x", 0))
		clock.Advance(24 * time.Hour)
		val, err := svc.Get(ctx, "forever")
		require.NoError(t, err)
		assert.Equal(t, "x", val)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "forever", "never-set"))
		val, err := svc.Get(ctx, "forever")
		require.NoError(t, err)
		assert.Empty(t, val)
	})
}

func TestMemoryCacheSweep(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	mem := NewMemoryCacheServiceWithClock(clock.Now).(*memoryCacheService)
	mem.sweepAt = 3

	require.NoError(t, mem.Set(ctx, "a", "1", time.Second))
	require.NoError(t, mem.Set(ctx, "b", "2", time.Second))
	require.NoError(t, mem.Set(ctx, "keep", "3", 0))
	clock.Advance(2 * time.Second)

	// 第四次写入时达到阈值，先清掉 a 和 b
	require.NoError(t, mem.Set(ctx, "c", "4", time.Minute))
	assert.Equal(t, 2, mem.Len())
	val, err := mem.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "3", val)
}

func TestNewCacheServiceWithFallback(t *testing.T) {
	t.Run("没有客户端", func(t *testing.T) {
		assert.Equal(t, CacheTypeMemory, GetCacheServiceType(NewCacheServiceWithFallback(nil)))
	})

	t.Run("Redis 无法连接", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
		defer client.Close()
		assert.Equal(t, CacheTypeMemory, GetCacheServiceType(NewCacheServiceWithFallback(client)))
	})

	t.Run("Redis 类型识别", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		defer client.Close()
		svc := NewCacheService(client, 0)
		assert.Equal(t, CacheTypeRedis, GetCacheServiceType(svc))
		assert.Equal(t, DefaultRedisOpTimeout, svc.(*redisCacheService).opTimeout)
		assert.NoError(t, svc.Delete(context.Background()), "没有键时不访问 Redis")
	})
}
