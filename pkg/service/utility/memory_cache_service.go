/*
 * @Description: 内存缓存服务实现（用于 Redis 不可用时的降级方案）
 * @Author: 安知鱼
 * @Date: 2025-10-05 00:00:00
 * @LastEditTime: 2026-10-15 12:47:05
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"sync"
	"time"
)

// cacheItem 缓存项结构
type cacheItem struct {
	value      string
	expiration time.Time
	hasExpiry  bool
}

// isExpired 检查在 now 时刻是否过期
func (item *cacheItem) isExpired(now time.Time) bool {
	return item.hasExpiry && !now.Before(item.expiration)
}

// defaultSweepThreshold 条目数达到该值后，每次写入前先清理过期项
const defaultSweepThreshold = 4096

// memoryCacheService 是基于内存的缓存服务实现。
// 过期项在读取时惰性删除，条目较多时写入前整体清理一次，不需要后台协程。
type memoryCacheService struct {
	mu      sync.RWMutex
	data    map[string]*cacheItem
	now     func() time.Time
	sweepAt int
}

// NewMemoryCacheService 创建内存缓存服务实例
func NewMemoryCacheService() CacheService {
	return NewMemoryCacheServiceWithClock(time.Now)
}

// NewMemoryCacheServiceWithClock 使用自定义时钟创建内存缓存，便于测试过期逻辑
func NewMemoryCacheServiceWithClock(now func() time.Time) CacheService {
	return &memoryCacheService{
		data:    make(map[string]*cacheItem),
		now:     now,
		sweepAt: defaultSweepThreshold,
	}
}

// Set 设置缓存
func (s *memoryCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	now := s.now()
	item := &cacheItem{
		value:     value,
		hasExpiry: expiration > 0,
	}
	if expiration > 0 {
		item.expiration = now.Add(expiration)
	}

	s.mu.Lock()
	if len(s.data) >= s.sweepAt {
		s.sweepLocked(now)
	}
	s.data[key] = item
	s.mu.Unlock()
	return nil
}

// Get 获取缓存
func (s *memoryCacheService) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	item, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return "", nil
	}

	if item.isExpired(s.now()) {
		s.mu.Lock()
		// 读锁释放后可能已被新值覆盖，只删除同一个过期项
		if current, ok := s.data[key]; ok && current == item {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return "", nil
	}

	return item.value, nil
}

// sweepLocked 删除所有过期项，调用方需持有写锁
func (s *memoryCacheService) sweepLocked(now time.Time) {
	for key, item := range s.data {
		if item.isExpired(now) {
			delete(s.data, key)
		}
	}
}

// Delete 删除缓存
func (s *memoryCacheService) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// Len 返回当前保存的条目数（包括尚未被读取淘汰的过期项）
func (s *memoryCacheService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
