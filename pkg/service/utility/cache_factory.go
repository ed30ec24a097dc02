/*
 * @Description: 缓存后端选择：Redis 可用时使用 Redis，否则退回进程内存
 * @Author: 安知鱼
 * @Date: 2025-10-05 00:00:00
 * @LastEditTime: 2026-10-15 17:33:02
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const fallbackPingTimeout = 3 * time.Second

type CacheServiceType string

const (
	CacheTypeRedis  CacheServiceType = "redis"
	CacheTypeMemory CacheServiceType = "memory"
)

// NewCacheServiceWithFallback 在 redisClient 为 nil 或无法 Ping 通时返回内存缓存。
// 内存缓存只在本进程内有效，多实例部署时各自缓存。
func NewCacheServiceWithFallback(redisClient *redis.Client) CacheService {
	if redisClient == nil {
		log.Println("🔄 搜索缓存使用进程内存")
		return NewMemoryCacheService()
	}

	ctx, cancel := context.WithTimeout(context.Background(), fallbackPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis 不可用: %v，搜索缓存改用进程内存", err)
		return NewMemoryCacheService()
	}

	log.Println("✅ 搜索缓存使用 Redis")
	return NewCacheService(redisClient, DefaultRedisOpTimeout)
}

// GetCacheServiceType 返回缓存后端的类型，用于启动横幅
func GetCacheServiceType(svc CacheService) CacheServiceType {
	if _, ok := svc.(*redisCacheService); ok {
		return CacheTypeRedis
	}
	return CacheTypeMemory
}
