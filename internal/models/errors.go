package models

import (
	"errors"
	"fmt"
)

// Доменные ошибки. Сервисы возвращают их (возможно обёрнутыми через %w),
// HTTP-обработчики сопоставляют им статус и машиночитаемый код.
var (
	// ErrUserNotFound — пользователь с таким идентификатором не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrWorkoutNotFound — запись не существует либо принадлежит другому
	// пользователю. Эти случаи намеренно неразличимы.
	ErrWorkoutNotFound = errors.New("workout not found")
	// ErrInsufficientTickets — на балансе меньше одного тикета.
	ErrInsufficientTickets = errors.New("insufficient tickets")
	// ErrDailyLimitReached — исчерпан дневной лимит генераций.
	ErrDailyLimitReached = errors.New("daily generation limit reached")
	// ErrProviderFailure — провайдер генерации вернул ошибку.
	ErrProviderFailure = errors.New("generation provider failure")
)

// CooldownError — между генерациями ещё не прошёл интервал охлаждения.
// Несёт остаток ожидания в целых секундах, округлённый вверх.
type CooldownError struct {
	RemainingSeconds int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active: %d seconds remaining", e.RemainingSeconds)
}
