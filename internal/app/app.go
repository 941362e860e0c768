package app

import (
	"context"
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

	"github.com/priya-tenac/Ai-Study-Buddy/internal/config"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/controller"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/service"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/database"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/monitoring"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/security"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	sessions *repository.StudySessionRepository
	results  *repository.QuizResultRepository
	plans    *repository.StudyPlanRepository
}

type services struct {
	ai         *service.AIService
	mail       *service.MailService
	storage    *service.StorageService
	auth       *service.AuthService
	studyPacks *service.StudyPackService
	quiz       *service.QuizService
	quizEngine *service.QuizSessionEngine
	flashcards *service.FlashcardService
	planner    *service.PlannerService
	exam       *service.ExamService
	chat       *service.ChatService
	extraction *service.ExtractionService
	analytics  *service.AnalyticsService
}

type controllers struct {
	auth      *controller.AuthController
	studyPack *controller.StudyPackController
	quiz      *controller.QuizController
	exam      *controller.ExamController
	planner   *controller.PlannerController
	chat      *controller.ChatController
	extract   *controller.ExtractController
	dashboard *controller.DashboardController
	contact   *controller.ContactController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		sessions: repository.NewStudySessionRepository(db),
		results:  repository.NewQuizResultRepository(db),
		plans:    repository.NewStudyPlanRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.mail = service.NewMailService(cfg.SMTP)
	s.storage = service.NewStorageService(cfg)

	s.auth = service.NewAuthService(repos.user, rdb, s.mail, cfg)
	s.studyPacks = service.NewStudyPackService(s.ai, repos.sessions)
	s.quiz = service.NewQuizService(s.ai)
	s.quizEngine = service.NewQuizSessionEngine(s.quiz, repos.results)
	s.flashcards = service.NewFlashcardService()
	s.planner = service.NewPlannerService(repos.plans)
	s.exam = service.NewExamService(s.ai)
	s.chat = service.NewChatService(s.ai)
	s.extraction = service.NewExtractionService(s.ai, s.storage, cfg.OCR)
	s.analytics = service.NewAnalyticsService(repos.sessions, repos.results)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		studyPack: controller.NewStudyPackController(s.studyPacks, s.flashcards),
		quiz:      controller.NewQuizController(s.quizEngine, s.quiz),
		exam:      controller.NewExamController(s.exam),
		planner:   controller.NewPlannerController(s.planner),
		chat:      controller.NewChatController(s.chat),
		extract:   controller.NewExtractController(s.extraction),
		dashboard: controller.NewDashboardController(s.analytics, repos.sessions, repos.results),
		contact:   controller.NewContactController(s.mail),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ai-study-buddy", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
