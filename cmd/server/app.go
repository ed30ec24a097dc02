/*
 * @Description: 应用装配与生命周期
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2026-10-15 16:48:12
 * @LastEditors: 安知鱼
 */
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hollowpress/hollow-press/internal/app/middleware"
	"github.com/hollowpress/hollow-press/internal/app/task"
	"github.com/hollowpress/hollow-press/internal/infra/persistence/database"
	"github.com/hollowpress/hollow-press/internal/infra/persistence/sqlrepo"
	"github.com/hollowpress/hollow-press/internal/infra/router"
	"github.com/hollowpress/hollow-press/internal/pkg/version"
	"github.com/hollowpress/hollow-press/pkg/config"
	search_handler "github.com/hollowpress/hollow-press/pkg/handler/search"
	"github.com/hollowpress/hollow-press/pkg/idgen"
	"github.com/hollowpress/hollow-press/pkg/service/search"
	"github.com/hollowpress/hollow-press/pkg/service/utility"
)

const (
	defaultPort       = "8091"
	defaultRateLimit  = 120
	defaultRateBurst  = 30
	shutdownTimeout   = 10 * time.Second
	redisPingDeadline = 5 * time.Second
)

// App 持有所有长生命周期的组件
type App struct {
	cfg           *config.Config
	db            *database.DB
	redisClient   *redis.Client
	cacheSvc      utility.CacheService
	searchService *search.SearchService
	scheduler     *task.Scheduler
	engine        *gin.Engine
}

func (a *App) PrintBanner() {
	banner := `
  _   _       _ _                 ____
 | | | | ___ | | | _____      __ |  _ \ _ __ ___  ___ ___
 | |_| |/ _ \| | |/ _ \ \ /\ / / | |_) | '__/ _ \/ __/ __|
 |  _  | (_) | | | (_) \ V  V /  |  __/| | |  __/\__ \__ \
 |_| |_|\___/|_|_|\___/ \_/\_/   |_|   |_|  \___||___/___/
`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Hollow Press Search: %s", version.GetVersionString())
	log.Printf(" 缓存: %s", utility.GetCacheServiceType(a.cacheSvc))
	log.Println("--------------------------------------------------------")
}

// NewApp 执行所有的初始化和依赖注入工作，返回的 cleanup 负责释放连接
func NewApp(cfg *config.Config) (*App, func(), error) {
	// --- Phase 1: 初始化 ID 编码器 ---
	// 必须与博客主程序使用同一个种子，否则链接中的公共ID对不上
	if err := idgen.InitSqidsEncoderWithSeed(cfg.GetString(config.KeyIDSeed)); err != nil {
		return nil, nil, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}
	log.Println("✅ ID 编码器初始化成功")

	// --- Phase 2: 初始化基础设施 ---
	db, err := database.NewSQLDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据库连接池失败: %w", err)
	}

	// Redis 不可用时返回 nil，缓存自动降级到内存
	pingCtx, cancel := context.WithTimeout(context.Background(), redisPingDeadline)
	redisClient, err := database.NewRedisClient(pingCtx, cfg)
	cancel()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("redis 初始化失败: %w", err)
	}

	cleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		db.Close()
		if redisClient != nil {
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}

	// --- Phase 3: 初始化数据仓库层与内容源 ---
	referenceSource, err := search.NewReferenceSource()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("加载静态说明页失败: %w", err)
	}
	registry, err := search.NewRegistry(
		search.NewDocumentSource(sqlrepo.NewArticleRepo(db, db.Dialect)),
		search.NewPageSource(sqlrepo.NewPageRepo(db, db.Dialect)),
		search.NewReplySource(sqlrepo.NewCommentRepo(db, db.Dialect)),
		referenceSource,
		search.NewAccountSource(sqlrepo.NewUserRepo(db, db.Dialect)),
		search.NewReportSource(sqlrepo.NewReportRepo(db, db.Dialect)),
	)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("注册内容源失败: %w", err)
	}

	// --- Phase 4: 初始化业务逻辑层 ---
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)
	searchService := search.NewSearchService(registry, cacheSvc, search.Options{
		CacheTTL:         cfg.GetDurationOr(config.KeySearchCacheTTL, search.DefaultCacheTTL),
		SourceTimeout:    cfg.GetDurationOr(config.KeySearchSourceTimeout, search.DefaultSourceTimeout),
		TrendingCapacity: cfg.GetIntOr(config.KeySearchTrendingCapacity, search.DefaultTrendingCapacity),
	})

	scheduler := task.NewScheduler(searchService.Tracker())
	if err := scheduler.RegisterJobs(cfg.GetString(config.KeySearchTrendingDecay)); err != nil {
		cleanup()
		return nil, nil, err
	}

	// --- Phase 5: 初始化 HTTP 层 ---
	jwtSecret := cfg.GetString(config.KeyJWTSecret)
	if jwtSecret == "" {
		// 没有共享密钥时所有令牌都无法通过校验，只能以访客身份搜索
		jwtSecret = uuid.NewString()
		log.Println("⚠️  未配置 Auth.JWTSecret，已生成临时密钥，管理员搜索不可用")
	}
	mw := middleware.NewMiddleware([]byte(jwtSecret))

	if cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	// 限流按 c.ClientIP() 计数，只采信受信任代理转发的客户端地址
	if err := engine.SetTrustedProxies(cfg.GetStringList(config.KeyServerTrustedProxies)); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("无效的受信任代理配置: %w", err)
	}
	engine.Use(gin.Logger(), gin.Recovery())

	router.NewRouter(search_handler.NewHandler(searchService), mw, router.RateLimit{
		RequestsPerMinute: cfg.GetIntOr(config.KeySearchRateLimit, defaultRateLimit),
		Burst:             cfg.GetIntOr(config.KeySearchRateBurst, defaultRateBurst),
	}).Setup(engine)

	app := &App{
		cfg:           cfg,
		db:            db,
		redisClient:   redisClient,
		cacheSvc:      cacheSvc,
		searchService: searchService,
		scheduler:     scheduler,
		engine:        engine,
	}
	return app, cleanup, nil
}

func (a *App) SearchService() *search.SearchService {
	return a.searchService
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

// Run 启动调度器并监听端口，ctx 取消后优雅关闭 HTTP 服务
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = defaultPort
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("应用程序启动成功，正在监听端口: %s", port)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("收到退出信号，正在关闭 HTTP 服务...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Stop 停止后台任务并丢弃进程内的热门词统计
func (a *App) Stop() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
	if a.searchService != nil {
		a.searchService.Close()
	}
}
