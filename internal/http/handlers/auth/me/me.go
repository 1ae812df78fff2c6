// Package me реализует HTTP-обработчик выдачи идентичности с балансом.
//
// Маршрут не прячется за общим auth middleware нарочно: отсутствие заголовка
// и несуществующий пользователь здесь различимы (401 против 404).
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/http/response"
	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Handler управляет HTTP-запросами идентичности.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики идентичности.
type Service interface {
	Identity(ctx context.Context, uid string) (*models.User, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := r.Header.Get(middlewarectx.UserHeader)
	if uid == "" {
		log.Error("missing user id header")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "missing user id header"))
		return
	}

	usr, balance, err := h.service.Identity(r.Context(), uid)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", sl.UID(uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "user not found"))
			return
		}
		log.Error("failed to read identity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read identity"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":             usr.UID,
		"created_at":     usr.CreatedAt,
		"ticket_balance": balance,
	}))
}
