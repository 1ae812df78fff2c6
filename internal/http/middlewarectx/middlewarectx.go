// Package middlewarectx содержит HTTP middleware приложения и ключи
// контекста запроса.
//
// AuthMiddleware проверяет заголовок X-User-Id: идентификатор должен
// присутствовать и соответствовать существующему пользователю. При успехе
// идентификатор кладётся в контекст запроса для обработчиков, иначе
// возвращается HTTP 401 Unauthorized.
package middlewarectx

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

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID — ключ для идентификатора пользователя в контексте.
const UserUID Key = "user_uid"

// UserHeader — заголовок с непрозрачным идентификатором пользователя.
// Другой аутентификации у приложения нет.
const UserHeader = "X-User-Id"

// UserReader описывает чтение пользователя из хранилища.
type UserReader interface {
	ReadUser(ctx context.Context, uid string) (*models.User, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет заголовок
// X-User-Id и существование пользователя.
func AuthMiddleware(users UserReader, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			uid := r.Header.Get(UserHeader)
			if uid == "" {
				log.Error("missing user id header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, "missing user id header"))
				return
			}

			if _, err := users.ReadUser(r.Context(), uid); err != nil {
				log.Error("unknown user", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.CodeUnauthorized, "unknown user"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
