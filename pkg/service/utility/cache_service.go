/*
 * @Description: 缓存服务接口与 Redis 实现
 * @Author: 安知鱼
 * @Date: 2025-06-20 15:17:47
 * @LastEditTime: 2026-10-15 17:31:20
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisOpTimeout 是单次 Redis 操作的上限，缓存变慢时搜索直接当作未命中
const DefaultRedisOpTimeout = time.Second

// CacheService 是搜索结果缓存的存储后端。
// Get 在键不存在或已过期时返回空字符串和 nil 错误；expiration 为 0 表示永不过期。
type CacheService interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

type redisCacheService struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewCacheService 基于已连接的客户端创建 Redis 缓存，opTimeout 非正数时使用默认值
func NewCacheService(client *redis.Client, opTimeout time.Duration) CacheService {
	if opTimeout <= 0 {
		opTimeout = DefaultRedisOpTimeout
	}
	return &redisCacheService{client: client, opTimeout: opTimeout}
}

func (s *redisCacheService) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *redisCacheService) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.client.Del(ctx, keys...).Err()
}
