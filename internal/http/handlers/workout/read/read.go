// Package read реализует HTTP-обработчик чтения одной тренировки по ID.
//
// В отличие от списка, здесь отдаётся полное содержимое записи. Чужая и
// несуществующая записи дают одинаковый 404: существование чужих записей
// не раскрывается.
package read

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/http/response"
	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Handler управляет HTTP-запросами чтения тренировки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения тренировки.
type Service interface {
	Read(ctx context.Context, userUID, id string) (*models.WorkoutRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.read"

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

	id := chi.URLParam(r, "id")

	rec, err := h.service.Read(r.Context(), uid, id)
	if err != nil {
		if errors.Is(err, models.ErrWorkoutNotFound) {
			log.Info("workout not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(response.CodeNotFound, "workout not found"))
			return
		}
		log.Error("failed to read workout", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(response.CodeInternal, "could not read workout"))
		return
	}

	// Content и Params — json.RawMessage: в ответ они попадают разобранными
	// документами, байт в байт совпадающими с сохранёнными.
	resp := map[string]any{
		"id":         rec.ID,
		"kind":       rec.Kind,
		"title":      rec.Title,
		"content":    rec.Content,
		"created_at": rec.CreatedAt,
		"updated_at": rec.UpdatedAt,
	}
	if rec.TemplateID != nil {
		resp["template_id"] = *rec.TemplateID
	}
	if rec.Params != nil {
		resp["params"] = json.RawMessage(rec.Params)
	}

	render.JSON(w, r, response.StatusOKWithData(resp))
}
