package models

import "time"

// RateLimitState — состояние дневного лимита генераций для одного пользователя.
// DailyGenCount между сбросами только растёт; сброс происходит один раз
// в календарные сутки и обнуляет счётчик, продвигая LastResetAt.
type RateLimitState struct {
	UserUID       string     `json:"user_uid"`
	DailyGenCount int        `json:"daily_gen_count"`
	LastResetAt   time.Time  `json:"last_reset_at"`
	LastGenAt     *time.Time `json:"last_gen_at,omitempty"` // nil, пока не было ни одной успешной генерации
}
