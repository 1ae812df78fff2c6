// Package anonymous реализует HTTP-обработчик анонимной регистрации.
//
// Handler создаёт нового пользователя, начисляет ему приветственные тикеты
// и возвращает идентификатор со стартовым балансом.
package anonymous

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitforge/workout-api/internal/http/response"
	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Handler управляет HTTP-запросами на анонимную регистрацию.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	RegisterAnonymous(ctx context.Context) (*models.User, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Анонимная регистрация
// @Description Создаёт анонимного пользователя и начисляет приветственные тикеты.
// @Tags Auth
// @Produce json
// @Success 201 {object} map[string]any "Созданный пользователь"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/anonymous [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.anonymous"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	usr, balance, err := h.service.RegisterAnonymous(r.Context())
	if err != nil {
		log.Error("failed to register anonymous user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not register user"))
		return
	}

	log.Info("anonymous user created", sl.UID(usr.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":             usr.UID,
		"created_at":     usr.CreatedAt,
		"ticket_balance": balance,
		"message":        "Anonymous user created with welcome tickets",
	}))
}
