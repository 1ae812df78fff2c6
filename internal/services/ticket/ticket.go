// Package ticket содержит бизнес-логику журнала тикетов: начисления,
// списания, покупки и подсчёт баланса.
package ticket

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Repository определяет методы для работы с журналом тикетов в хранилище.
type Repository interface {
	// CreateLedgerEntry добавляет запись журнала и возвращает её ID.
	CreateLedgerEntry(ctx context.Context, entry models.LedgerEntry) (string, error)
	// SumLedgerEntries возвращает сумму всех записей пользователя.
	SumLedgerEntries(ctx context.Context, userUID string) (int, error)
	// ListLedgerEntries возвращает последние записи пользователя.
	ListLedgerEntries(ctx context.Context, userUID string, limit int) ([]*models.LedgerEntry, error)
}

// products — соответствие идентификаторов продуктов количеству тикетов.
// Покупка — заглушка без реального платежа.
var products = map[string]int{
	"tickets_10":  10,
	"tickets_30":  30,
	"tickets_100": 100,
}

// defaultPurchaseQuantity используется, когда продукт неизвестен,
// а количество в запросе не задано.
const defaultPurchaseQuantity = 10

// Service реализует бизнес-логику журнала тикетов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Append добавляет запись журнала. Знак суммы не проверяется: журнал
// принимает любые записи, корректность обеспечивают вызывающие сервисы.
func (s *Service) Append(ctx context.Context, userUID string, kind models.EntryKind, amount int, description string, referenceID *string) (string, error) {
	id, err := s.repo.CreateLedgerEntry(ctx, models.LedgerEntry{
		UserUID:     userUID,
		Kind:        kind,
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
	})
	if err != nil {
		return "", err
	}
	s.log.Info("ledger entry appended",
		sl.UID(userUID), slog.String("kind", string(kind)), slog.Int("amount", amount))
	return id, nil
}

// Balance возвращает баланс пользователя: сумму всех его записей журнала.
// Баланс нигде не кешируется и не хранится отдельно.
func (s *Service) Balance(ctx context.Context, userUID string) (int, error) {
	return s.repo.SumLedgerEntries(ctx, userUID)
}

// Recent возвращает последние записи журнала пользователя.
func (s *Service) Recent(ctx context.Context, userUID string, limit int) ([]*models.LedgerEntry, error) {
	return s.repo.ListLedgerEntries(ctx, userUID, limit)
}

// Purchase начисляет тикеты по идентификатору продукта. Неизвестный продукт
// трактуется как покупка quantity тикетов. Возвращает число начисленных
// тикетов и новый баланс.
func (s *Service) Purchase(ctx context.Context, userUID string, req models.PurchaseRequest) (int, int, error) {
	amount, ok := products[req.ProductID]
	if !ok {
		amount = req.Quantity
		if amount <= 0 {
			amount = defaultPurchaseQuantity
		}
	}

	description := fmt.Sprintf("Purchased %d tickets (STUB)", amount)
	if _, err := s.Append(ctx, userUID, models.EntryPurchase, amount, description, nil); err != nil {
		s.log.Error("failed to append purchase entry", sl.UID(userUID), sl.Err(err))
		return 0, 0, err
	}

	balance, err := s.Balance(ctx, userUID)
	if err != nil {
		return 0, 0, err
	}
	return amount, balance, nil
}
