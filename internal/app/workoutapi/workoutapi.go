// Package workoutapi собирает приложение: хранилище, миграции, кеш,
// провайдера генерации, сервисы и HTTP-сервер с graceful shutdown.
package workoutapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/fitforge/workout-api/internal/cache"
	"github.com/fitforge/workout-api/internal/config"
	"github.com/fitforge/workout-api/internal/migrations"
	"github.com/fitforge/workout-api/internal/provider"
	generationservice "github.com/fitforge/workout-api/internal/services/generation"
	rategateservice "github.com/fitforge/workout-api/internal/services/rategate"
	ticketservice "github.com/fitforge/workout-api/internal/services/ticket"
	userservice "github.com/fitforge/workout-api/internal/services/user"
	workoutservice "github.com/fitforge/workout-api/internal/services/workout"
	"github.com/fitforge/workout-api/internal/storage"
)

// App — собранное приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New инициализирует зависимости и возвращает готовое к запуску приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	genProvider, err := provider.New(cfg.Generation)
	if err != nil {
		return nil, err
	}

	ticketService := ticketservice.New(db, logger)
	rateGate := rategateservice.New(db, cfg.Generation.DailyLimit, cfg.Generation.Cooldown, logger)
	workoutService := workoutservice.New(db, cacheRedis, logger)
	userService := userservice.New(db, ticketService, cfg.Generation.WelcomeTickets, logger)
	generationService := generationservice.New(ticketService, rateGate, genProvider, workoutService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, userService, ticketService, workoutService, generationService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
