// Package main Workout Generator API
//
// @title           Workout Generator API
// @version         1.0
// @description     API мобильного приложения генерации тренировок

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-Id
// @description Непрозрачный идентификатор пользователя, выданный при анонимной регистрации.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fitforge/workout-api/internal/app/workoutapi"
	"github.com/fitforge/workout-api/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting workout-api", slog.String("env", cfg.Env),
		slog.String("provider", cfg.Generation.Provider))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := workoutapi.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("workout-api stopped gracefully")
}
