package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/church-cms/internal/api/http"
	"github.com/spec-kit/church-cms/internal/api/http/handlers"
	"github.com/spec-kit/church-cms/internal/auth"
	"github.com/spec-kit/church-cms/internal/config"
	"github.com/spec-kit/church-cms/internal/events"
	"github.com/spec-kit/church-cms/internal/observability"
	"github.com/spec-kit/church-cms/internal/persistence"
	"github.com/spec-kit/church-cms/internal/repository"
	"github.com/spec-kit/church-cms/internal/resource"
	"github.com/spec-kit/church-cms/internal/service"
	"github.com/spec-kit/church-cms/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	adminRepo := repository.NewAdminRepository(pool)

	authService := service.NewAuthService(*cfg, adminRepo, logger)
	if err := authService.EnsureDefaultAdmin(ctx, cfg.Bootstrap); err != nil {
		logger.Fatal("failed to provision default admin", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartSubscribers(dispatcher,
		service.NewCacheInvalidator(redis, logger),
		service.NewNotificationService(dispatcher, logger, cfg.Notification))

	resourceHandlers := make([]*handlers.ResourcesHandler, 0)
	for _, desc := range resource.Registry() {
		store := repository.NewResourceRepository(pool, desc)
		svc := service.NewResourceService(desc, store, redis, dispatcher, logger)
		resourceHandlers = append(resourceHandlers, handlers.NewResourcesHandler(svc))
	}

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Admins:         handlers.NewAdminsHandler(authService),
		Resources:      resourceHandlers,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
