// Package purchase реализует HTTP-обработчик покупки тикетов.
// Покупка — заглушка: тикеты начисляются без реального платежа.
package purchase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/http/response"
	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Handler управляет HTTP-запросами покупки тикетов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики покупки.
type Service interface {
	Purchase(ctx context.Context, userUID string, req models.PurchaseRequest) (int, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ticket.purchase"

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

	var req models.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidParams, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	added, balance, err := h.service.Purchase(r.Context(), uid, req)
	if err != nil {
		log.Error("failed to purchase tickets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not purchase tickets"))
		return
	}

	log.Info("tickets purchased", sl.UID(uid), slog.Int("added", added))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"tickets_added": added,
		"new_balance":   balance,
	}))
}
