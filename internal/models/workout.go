package models

import (
	"encoding/json"
	"time"
)

// WorkoutKind — происхождение записи тренировки.
type WorkoutKind string

const (
	// WorkoutGenerated — меню, созданное провайдером генерации.
	WorkoutGenerated WorkoutKind = "generated"
	// WorkoutTemplate — сохранённый пользователем статический шаблон.
	WorkoutTemplate WorkoutKind = "template"
)

// WorkoutRecord — сохранённая тренировка пользователя. Content хранит
// сериализованное меню как есть, байт в байт: шаблон после сохранения
// должен читаться ровно тем же документом, каким был записан.
type WorkoutRecord struct {
	ID         string          `json:"id"`
	UserUID    string          `json:"user_uid"`
	Kind       WorkoutKind     `json:"kind"`
	TemplateID *string         `json:"template_id,omitempty"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Params     json.RawMessage `json:"params,omitempty"` // Параметры генерации, только для kind=generated
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// WorkoutListItem — элемент постраничного списка тренировок.
// Content в список намеренно не попадает, он отдаётся только при чтении
// одной записи.
type WorkoutListItem struct {
	ID         string      `json:"id"`
	Kind       WorkoutKind `json:"kind"`
	TemplateID *string     `json:"template_id,omitempty"`
	Title      string      `json:"title"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// SaveTemplateRequest — DTO запроса на сохранение шаблона тренировки.
type SaveTemplateRequest struct {
	TemplateID string          `json:"template_id" validate:"required"`
	Title      string          `json:"title" validate:"required"`
	Content    json.RawMessage `json:"content" validate:"required"`
}
