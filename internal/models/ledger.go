package models

import "time"

// EntryKind — тип записи в журнале тикетов.
type EntryKind string

const (
	// EntryGrant — начисление (приветственный бонус).
	EntryGrant EntryKind = "grant"
	// EntryConsume — списание за генерацию.
	EntryConsume EntryKind = "consume"
	// EntryPurchase — покупка тикетов.
	EntryPurchase EntryKind = "purchase"
	// EntryRefund — возврат после неудачной генерации.
	EntryRefund EntryKind = "refund"
)

// LedgerEntry — одна запись журнала тикетов. Записи неизменяемы и никогда
// не удаляются: баланс пользователя всегда равен сумме полей Amount всех
// его записей и нигде отдельно не хранится.
type LedgerEntry struct {
	ID          string    `json:"id"`                     // Уникальный идентификатор записи
	UserUID     string    `json:"user_uid"`               // Владелец записи
	Kind        EntryKind `json:"kind"`                   // Тип операции
	Amount      int       `json:"amount"`                 // Знаковая сумма: списания отрицательны
	Description string    `json:"description"`            // Человекочитаемое описание
	ReferenceID *string   `json:"reference_id,omitempty"` // Для refund — ссылка на списание, которое он отменяет
	CreatedAt   time.Time `json:"created_at"`
}

// PurchaseRequest — DTO запроса на покупку тикетов. Покупка — заглушка,
// реального платежа нет.
type PurchaseRequest struct {
	ProductID string `json:"product_id" validate:"omitempty"`
	Quantity  int    `json:"quantity" validate:"omitempty,gt=0"`
}
