package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/fitforge/workout-api/internal/http/response"
)

// Общий для процесса ограничитель входящих запросов. Персональные лимиты
// генерации считает rategate, здесь только грубая защита от флуда.
var limiter = rate.NewLimiter(20, 40)

// RateLimitMiddleware отклоняет запросы сверх общего лимита процесса.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Response{
					Status: response.StatusError,
					Error:  "too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
