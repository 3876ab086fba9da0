package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thinking_edu_backend/internal/config"
	"thinking_edu_backend/internal/controller"
	"thinking_edu_backend/internal/repository"
	"thinking_edu_backend/internal/service"
	"thinking_edu_backend/internal/util"
	"thinking_edu_backend/pkg/database"
	"thinking_edu_backend/pkg/logger"
	"thinking_edu_backend/pkg/monitoring"
	"thinking_edu_backend/pkg/security"
	"thinking_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	attempt   *repository.AttemptRepository
	badge     *repository.BadgeRepository
	session   *repository.SessionRepository
	chat      *repository.ChatRepository
	thought   *repository.ThoughtLogRepository
	dailyGoal *repository.DailyGoalRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	problem     *service.ProblemService
	ai          *service.AIService
	attempt     *service.AttemptService
	session     *service.SessionService
	stats       *service.StatsService
	achievement *service.AchievementService
	goal        *service.GoalService
	user        *service.UserService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	problem     *controller.ProblemController
	attempt     *controller.AttemptController
	session     *controller.SessionController
	stats       *controller.StatsController
	achievement *controller.AchievementController
	goal        *controller.GoalController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		attempt:   repository.NewAttemptRepository(db),
		badge:     repository.NewBadgeRepository(db),
		session:   repository.NewSessionRepository(db),
		chat:      repository.NewChatRepository(db),
		thought:   repository.NewThoughtLogRepository(db),
		dailyGoal: repository.NewDailyGoalRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.problem = service.NewProblemService(s.storage, rdb, cfg.Catalog)
	s.ai = service.NewAIService(cfg.AI)
	s.attempt = service.NewAttemptService(
		repos.attempt,
		repos.user,
		repos.badge,
		repos.session,
		repos.thought,
		s.problem,
		s.ai,
		db,
	)
	s.session = service.NewSessionService(repos.session, repos.chat, repos.thought, s.problem)
	s.stats = service.NewStatsService(repos.attempt)
	s.achievement = service.NewAchievementService(repos.user, repos.badge)
	s.goal = service.NewGoalService(repos.dailyGoal, repos.attempt)
	s.user = service.NewUserService(repos.user)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.storage),
		problem:     controller.NewProblemController(s.problem),
		attempt:     controller.NewAttemptController(s.attempt, s.session, s.problem, s.ai),
		session:     controller.NewSessionController(s.session),
		stats:       controller.NewStatsController(s.stats),
		achievement: controller.NewAchievementController(s.achievement),
		goal:        controller.NewGoalController(s.goal),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	// 中间件从上下文取配置（JWT密钥等）
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
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

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Redis只承担题库缓存，连不上时降级为进程内缓存
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, catalog cache degraded", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
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
		if _, err := tracing.InitTracer("thinking-master", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	// 本地存储模式下头像直接静态托管
	if cfg.Storage.Type != util.StorageMinio {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerRoutes(router, controllers, repos)

	// 热更新只覆盖可以安全替换的部分
	app.RegisterConfigCallback(func(c *config.Config) {
		services.ai.UpdateConfig(c.AI)
	})

	return app
}

// ApplyConfig 配置热重载入口，由 configwatcher 回调
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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
