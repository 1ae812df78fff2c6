// Package rategate реализует персональный лимит генераций: дневной счётчик
// и интервал охлаждения между успешными генерациями.
package rategate

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Repository определяет методы для работы с состоянием лимитов в хранилище.
type Repository interface {
	// EnsureRateLimit лениво создаёт состояние и возвращает его.
	EnsureRateLimit(ctx context.Context, userUID string) (*models.RateLimitState, error)
	// ResetRateLimit обнуляет дневной счётчик.
	ResetRateLimit(ctx context.Context, userUID string, now time.Time) error
	// IncrementRateLimit увеличивает счётчик и запоминает момент генерации.
	IncrementRateLimit(ctx context.Context, userUID string, now time.Time) error
}

// Service реализует проверку и фиксацию лимитов генерации.
type Service struct {
	repo       Repository
	dailyLimit int
	cooldown   time.Duration
	log        *slog.Logger
}

// New создает новый Service с заданными лимитами.
func New(repo Repository, dailyLimit int, cooldown time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		dailyLimit: dailyLimit,
		cooldown:   cooldown,
		log:        log,
	}
}

// Check проверяет допуск пользователя к генерации на момент now.
// Возвращает nil при допуске, models.ErrDailyLimitReached при исчерпании
// дневного лимита и *models.CooldownError, если интервал охлаждения ещё
// не истёк. Сутки считаются по локальной полуночи: сравнивается только дата.
func (s *Service) Check(ctx context.Context, userUID string, now time.Time) error {
	state, err := s.repo.EnsureRateLimit(ctx, userUID)
	if err != nil {
		return err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if state.LastResetAt.Before(startOfDay) {
		if err := s.repo.ResetRateLimit(ctx, userUID, now); err != nil {
			return err
		}
		state.DailyGenCount = 0
		state.LastResetAt = now
		s.log.Info("daily generation counter reset", sl.UID(userUID))
	}

	if state.DailyGenCount >= s.dailyLimit {
		return models.ErrDailyLimitReached
	}

	if state.LastGenAt != nil {
		elapsed := now.Sub(*state.LastGenAt)
		if elapsed < s.cooldown {
			remaining := int(math.Ceil((s.cooldown - elapsed).Seconds()))
			return &models.CooldownError{RemainingSeconds: remaining}
		}
	}

	return nil
}

// RecordGeneration фиксирует успешную генерацию: увеличивает дневной счётчик
// и запоминает момент. Вызывается только после того, как генерация прошла
// и результат сохранён; неудачные генерации счётчик не трогают.
func (s *Service) RecordGeneration(ctx context.Context, userUID string, now time.Time) error {
	return s.repo.IncrementRateLimit(ctx, userUID, now)
}
