/*
 * @Description: 频率限制中间件
 * @Author: 安知鱼
 * @Date: 2025-11-08 00:00:00
 * @LastEditTime: 2026-10-15 15:20:03
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/hollowpress/hollow-press/pkg/response"
)

// ipRateLimiter 用于存储每个IP地址的限流器
type ipRateLimiter struct {
	limiters map[string]*limiterInfo
	mu       sync.Mutex
	// 每个IP每分钟允许的请求数
	requestsPerMinute int
	// 突发请求数（允许短时间内的突发流量）
	burst int
	// 超过这个时间未访问的限流器会被清理
	idleTimeout time.Duration
}

// limiterInfo 存储限流器及其最后访问时间
type limiterInfo struct {
	limiter      *rate.Limiter
	lastAccessed time.Time
}

// newIPRateLimiter 创建一个新的IP限流器
func newIPRateLimiter(requestsPerMinute, burst int) *ipRateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &ipRateLimiter{
		limiters:          make(map[string]*limiterInfo),
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
		idleTimeout:       10 * time.Minute,
	}
}

// getLimiter 获取指定IP的限流器，同时顺带清理长时间未使用的限流器
func (i *ipRateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	info, exists := i.limiters[ip]
	if !exists {
		// 超过一定数量时才扫描，避免每次请求都遍历
		if len(i.limiters) >= 1024 {
			i.sweep(now)
		}
		info = &limiterInfo{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(i.requestsPerMinute)), i.burst),
		}
		i.limiters[ip] = info
	}
	info.lastAccessed = now
	return info.limiter
}

func (i *ipRateLimiter) sweep(now time.Time) {
	for ip, info := range i.limiters {
		if now.Sub(info.lastAccessed) > i.idleTimeout {
			delete(i.limiters, ip)
		}
	}
}

// CustomRateLimit 创建一个自定义的频率限制中间件。
// 客户端IP取自 c.ClientIP()，只有来自受信任代理的请求才会采信 X-Forwarded-For/X-Real-IP，
// 受信任代理由 engine.SetTrustedProxies 配置。
// requestsPerMinute: 每分钟允许的请求数
// burst: 突发请求数
func CustomRateLimit(requestsPerMinute, burst int) gin.HandlerFunc {
	limiter := newIPRateLimiter(requestsPerMinute, burst)

	return func(c *gin.Context) {
		ipLimiter := limiter.getLimiter(c.ClientIP(), time.Now())
		if !ipLimiter.Allow() {
			response.Error(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}
}
