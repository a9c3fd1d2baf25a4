package app

import (
	"context"
	"edupath_backend/internal/config"
	"edupath_backend/internal/controller"
	"edupath_backend/internal/repository"
	"edupath_backend/internal/service"
	"edupath_backend/internal/util"
	"edupath_backend/pkg/configwatcher"
	"edupath_backend/pkg/database"
	"edupath_backend/pkg/logger"
	"edupath_backend/pkg/monitoring"
	"edupath_backend/pkg/security"
	"edupath_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	cache  *service.Cache
}

type repositories struct {
	learningPath *repository.LearningPathRepository
	institute    *repository.InstituteRepository
	module       *repository.ModuleRepository
	lecture      *repository.LectureRepository
	progress     *repository.ProgressRepository
}

type services struct {
	learningPath *service.LearningPathService
	progress     *service.ProgressService
	catalog      *service.CatalogService
	vendor       *service.VendorService
	certificate  *service.CertificateService
	storage      *service.StorageService
}

type controllers struct {
	learningPath *controller.LearningPathController
	progress     *controller.ProgressController
	catalog      *controller.CatalogController
	vendor       *controller.VendorController
	certificate  *controller.CertificateController
	media        *controller.MediaController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		learningPath: repository.NewLearningPathRepository(db),
		institute:    repository.NewInstituteRepository(db),
		module:       repository.NewModuleRepository(db),
		lecture:      repository.NewLectureRepository(db),
		progress:     repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	cache := service.NewCache(rdb, cfg.Cache.TTL)
	a.cache = cache

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		learningPath: service.NewLearningPathService(repos.learningPath, repos.institute, repos.progress, cache),
		progress:     service.NewProgressService(repos.learningPath, repos.lecture, repos.progress, db),
		catalog:      service.NewCatalogService(repos.learningPath, repos.module, repos.lecture, cache, db),
		vendor:       service.NewVendorService(repos.learningPath, repos.institute, cache),
		certificate:  service.NewCertificateService(repos.learningPath, repos.institute, repos.progress),
		storage:      storage,
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		learningPath: controller.NewLearningPathController(s.learningPath),
		progress:     controller.NewProgressController(s.progress),
		catalog:      controller.NewCatalogController(s.catalog),
		vendor:       controller.NewVendorController(s.vendor),
		certificate:  controller.NewCertificateController(s.certificate),
		media:        controller.NewMediaController(s.storage),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不自动迁移，除非用 -migrate 显式要求
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直读存储，TTL 旁路缓存并非正确性依赖
		logger.Log.Warn("Redis unavailable, running without look-aside cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("edupath-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 配置热加载：目前只有缓存 TTL 可以安全地在线变更
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		a.Config.Cache = newCfg.Cache
		if a.cache != nil {
			a.cache.TTL = newCfg.Cache.TTL
		}
		logger.Log.Info("configuration reloaded", zap.Duration("cacheTTL", newCfg.Cache.TTL))
	})

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
