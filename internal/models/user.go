// Package models содержит доменные структуры приложения: пользователей,
// журнал тикетов, состояние лимитов генерации, тренировки и меню,
// а также DTO для приёма данных из JSON-запросов.
package models

import "time"

// User представляет анонимного пользователя приложения.
// Создаётся один раз при первой регистрации и после этого не изменяется.
type User struct {
	UID       string    `json:"id"`         // Уникальный идентификатор пользователя
	CreatedAt time.Time `json:"created_at"` // Дата создания учётной записи
}
