/*
 * @Description: 路由注册
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2026-10-15 16:20:41
 * @LastEditors: 安知鱼
 */
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hollowpress/hollow-press/internal/app/middleware"
	search_handler "github.com/hollowpress/hollow-press/pkg/handler/search"
)

// NoCacheMiddleware 全局反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// RateLimit 是搜索接口的限流参数
type RateLimit struct {
	RequestsPerMinute int
	Burst             int
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	searchHandler *search_handler.Handler
	mw            *middleware.Middleware
	rateLimit     RateLimit
}

func NewRouter(searchHandler *search_handler.Handler, mw *middleware.Middleware, rateLimit RateLimit) *Router {
	return &Router{
		searchHandler: searchHandler,
		mw:            mw,
		rateLimit:     rateLimit,
	}
}

// Setup 将所有路由注册到 Gin 引擎。
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Cors())

	// 指标不走 /api，也不限流
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	apiGroup.Use(NoCacheMiddleware())

	r.registerSearchRoutes(apiGroup)
	r.registerAdminSearchRoutes(apiGroup)
}

// registerSearchRoutes 注册公开的搜索路由，携带有效管理员令牌时可以搜索受限分类
func (r *Router) registerSearchRoutes(api *gin.RouterGroup) {
	searchGroup := api.Group("/search").Use(
		r.mw.JWTAuthOptional(),
		middleware.CustomRateLimit(r.rateLimit.RequestsPerMinute, r.rateLimit.Burst),
	)
	{
		// GET /api/search?q=关键词&types=document,page&limit=10&page=1
		searchGroup.GET("", r.searchHandler.Search)
		// GET /api/search/suggest?q=前缀&limit=5
		searchGroup.GET("/suggest", r.searchHandler.Suggest)
	}
}

func (r *Router) registerAdminSearchRoutes(api *gin.RouterGroup) {
	adminGroup := api.Group("/admin/search").Use(r.mw.JWTAuth(), r.mw.AdminAuth())
	{
		adminGroup.GET("/trending", r.searchHandler.Trending)
	}
}
