package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quickgig/database"
	"quickgig/internal/config"
	"quickgig/internal/email"
	"quickgig/internal/handlers"
	"quickgig/internal/logger"
	"quickgig/internal/metrics"
	"quickgig/internal/middleware"
	"quickgig/internal/repositories"
	"quickgig/internal/repositories/memory"
	"quickgig/internal/routes"
	"quickgig/internal/services"
	"quickgig/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if gormDB != nil {
		logger.Info("Database connected")
	} else {
		logger.Warn("Using in-memory storage, data is lost on restart")
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	repos := repositorySet(gormDB)
	if cfg.Database.SeedDemo {
		if err := database.SeedDemo(gormDB, repos, time.Now()); err != nil {
			logger.Fatal("Failed to seed demo data", "error", err)
		}
	}

	provider := initializeEmailProvider(cfg)
	defer provider.Close()

	stop := make(chan struct{})
	ginRouter := setupRouter(cfg, gormDB, repos, provider, stop)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stop)

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}

// SetupRouter собирает приложение поверх готового подключения.
// db == nil - хранилище в памяти, письма только логируются.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	return setupRouter(cfg, db, repositorySet(db), email.NewLogProvider(email.NewTemplateManager()), nil)
}

func setupRouter(cfg *config.Config, db *gorm.DB, repos repositories.Set, provider email.Provider, stop <-chan struct{}) *gin.Engine {
	apperrors.SetDebug(cfg.IsDevelopment())

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, repos, provider)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, db)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
	if stop != nil {
		limiter.StartCleanup(time.Minute, stop)
	}
	guards := middleware.Guards{
		Required: middleware.AuthMiddleware(serviceContainer.AuthService),
		Optional: middleware.OptionalAuthMiddleware(serviceContainer.AuthService),
		Throttle: limiter.Handler(),
	}

	// 4. Регистрация маршрутов
	routes.RegisterRoutes(ginRouter, appHandlers, guards, cfg.Server.APIPrefix)

	return ginRouter
}

// repositorySet выбирает реализацию репозиториев по наличию подключения
func repositorySet(db *gorm.DB) repositories.Set {
	if db == nil {
		return memory.NewStore().Repositories()
	}
	return repositories.NewGormSet()
}

func initializeServices(cfg *config.Config, repos repositories.Set, provider email.Provider) *services.ServiceContainer {
	return services.NewServiceContainer(cfg, repos, provider)
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	return handlers.NewAppHandlers(sc)
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	templates := email.NewTemplateManager()
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled, messages are only logged")
		return email.NewLogProvider(templates)
	}

	provider := email.NewSMTPProvider(email.ConfigFrom(cfg), templates)
	if err := provider.Validate(); err != nil {
		logger.Error("Invalid SMTP configuration, falling back to log provider", "error", err)
		return email.NewLogProvider(templates)
	}
	logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
