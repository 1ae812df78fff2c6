// Package workoutapi предоставляет маршруты приложения.
package workoutapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fitforge/workout-api/internal/http/handlers/auth/anonymous"
	"github.com/fitforge/workout-api/internal/http/handlers/auth/me"
	"github.com/fitforge/workout-api/internal/http/handlers/generate"
	"github.com/fitforge/workout-api/internal/http/handlers/health"
	"github.com/fitforge/workout-api/internal/http/handlers/ticket/balance"
	"github.com/fitforge/workout-api/internal/http/handlers/ticket/purchase"
	"github.com/fitforge/workout-api/internal/http/handlers/workout/list"
	"github.com/fitforge/workout-api/internal/http/handlers/workout/read"
	"github.com/fitforge/workout-api/internal/http/handlers/workout/remove"
	"github.com/fitforge/workout-api/internal/http/handlers/workout/savetemplate"
	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	generationservice "github.com/fitforge/workout-api/internal/services/generation"
	ticketservice "github.com/fitforge/workout-api/internal/services/ticket"
	userservice "github.com/fitforge/workout-api/internal/services/user"
	workoutservice "github.com/fitforge/workout-api/internal/services/workout"
	"github.com/fitforge/workout-api/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	db *storage.Storage,
	userService *userservice.Service,
	ticketService *ticketservice.Service,
	workoutService *workoutservice.Service,
	generationService *generationservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Открытые конечные точки
	r.Post("/auth/anonymous", anonymous.New(logger, userService).ServeHTTP)
	r.Get("/me", me.New(logger, userService).ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)

	// Группа за проверкой X-User-Id
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.AuthMiddleware(db, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/tickets/balance", balance.New(logger, ticketService).ServeHTTP)
		r.Post("/tickets/purchase", purchase.New(logger, ticketService).ServeHTTP)
		r.Post("/generate", generate.New(logger, generationService).ServeHTTP)
		r.Get("/workouts", list.New(logger, workoutService).ServeHTTP)
		r.Get("/workouts/{id}", read.New(logger, workoutService).ServeHTTP)
		r.Delete("/workouts/{id}", remove.New(logger, workoutService).ServeHTTP)
		r.Post("/workouts/save-template", savetemplate.New(logger, workoutService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
