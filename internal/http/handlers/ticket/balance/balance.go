// Package balance реализует HTTP-обработчик чтения баланса тикетов
// и последних записей журнала.
package balance

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/http/response"
	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// recentLimit — сколько последних записей журнала отдаётся с балансом.
const recentLimit = 10

// Handler управляет HTTP-запросами чтения баланса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики журнала тикетов.
type Service interface {
	Balance(ctx context.Context, userUID string) (int, error)
	Recent(ctx context.Context, userUID string, limit int) ([]*models.LedgerEntry, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ticket.balance"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeUnauthorized, "unauthorized"))
		return
	}

	balance, err := h.service.Balance(r.Context(), uid)
	if err != nil {
		log.Error("failed to read balance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read balance"))
		return
	}

	recent, err := h.service.Recent(r.Context(), uid, recentLimit)
	if err != nil {
		log.Error("failed to read recent entries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read recent entries"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"balance":             balance,
		"recent_transactions": recent,
	}))
}
