// Package generate реализует HTTP-обработчик генерации тренировки.
//
// Handler валидирует параметры, запускает оркестратор и сопоставляет
// доменным ошибкам конвейера HTTP-статусы с машиночитаемыми кодами:
// 402 — нет тикетов, 429 — дневной лимит или охлаждение, 502 — отказ
// провайдера.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/http/response"
	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
	"github.com/fitforge/workout-api/internal/services/generation"
)

// Handler управляет HTTP-запросами генерации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс оркестратора генерации.
type Service interface {
	Generate(ctx context.Context, userUID string, params models.GenerateParams) (*generation.Result, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сгенерировать меню тренировки
// @Description Списывает один тикет, генерирует меню и сохраняет его в истории пользователя.
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body models.GenerateParams true "Параметры генерации"
// @Success 200 {object} map[string]any "Сохранённая тренировка и остаток тикетов"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 402 {object} response.ErrorResponse "Недостаточно тикетов"
// @Failure 429 {object} response.ErrorResponse "Дневной лимит или интервал охлаждения"
// @Failure 502 {object} response.ErrorResponse "Отказ провайдера генерации"
// @Router /generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.generate"

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

	var params models.GenerateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(response.CodeInvalidParams, "invalid request body"))
		return
	}

	if err := h.validate.Struct(params); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.Generate(r.Context(), uid, params)
	if err != nil {
		h.writeError(w, r, log, err)
		return
	}

	log.Info("workout generated", sl.UID(uid), slog.String("workout_id", result.Record.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"workout":           result.Record,
		"ticket_consumed":   1,
		"remaining_tickets": result.RemainingTickets,
		"safety_notes":      result.SafetyNotes,
	}))
}

// writeError сопоставляет доменной ошибке конвейера HTTP-ответ.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var cooldownErr *models.CooldownError

	switch {
	case errors.As(err, &cooldownErr):
		log.Info("generation rejected: cooldown active",
			slog.Int("remaining_seconds", cooldownErr.RemainingSeconds))
		w.WriteHeader(http.StatusTooManyRequests)
		render.JSON(w, r, response.ErrorWithData(response.CodeCooldownActive,
			cooldownErr.Error(),
			map[string]any{"remaining_seconds": cooldownErr.RemainingSeconds}))
	case errors.Is(err, models.ErrDailyLimitReached):
		log.Info("generation rejected: daily limit reached")
		w.WriteHeader(http.StatusTooManyRequests)
		render.JSON(w, r, response.Error(response.CodeDailyLimitReached, "daily generation limit reached"))
	case errors.Is(err, models.ErrInsufficientTickets):
		log.Info("generation rejected: insufficient tickets")
		w.WriteHeader(http.StatusPaymentRequired)
		render.JSON(w, r, response.Error(response.CodeInsufficientTickets, "insufficient tickets"))
	case errors.Is(err, models.ErrProviderFailure):
		log.Error("generation failed: provider failure", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error(response.CodeProviderFailure, "generation provider failed"))
	default:
		log.Error("generation failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not generate workout"))
	}
}
