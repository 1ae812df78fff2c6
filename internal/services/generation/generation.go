// Package generation реализует оркестратор генерации тренировки:
// последовательность допуск → проверка баланса → списание → генерация →
// проверка безопасности → сохранение → фиксация лимита, с компенсирующим
// возвратом тикета при отказе после списания.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/metrics"
	"github.com/fitforge/workout-api/internal/models"
	"github.com/fitforge/workout-api/internal/safety"
)

// Tickets — часть журнала тикетов, нужная оркестратору.
type Tickets interface {
	Balance(ctx context.Context, userUID string) (int, error)
	Append(ctx context.Context, userUID string, kind models.EntryKind, amount int, description string, referenceID *string) (string, error)
}

// Gate — проверка и фиксация лимитов генерации.
type Gate interface {
	Check(ctx context.Context, userUID string, now time.Time) error
	RecordGeneration(ctx context.Context, userUID string, now time.Time) error
}

// Provider порождает меню тренировки из параметров.
type Provider interface {
	Generate(ctx context.Context, params models.GenerateParams) (*models.Menu, error)
}

// Workouts — сохранение записей тренировок.
type Workouts interface {
	Create(ctx context.Context, rec models.WorkoutRecord) (string, error)
}

// Result — итог успешного прохода конвейера.
type Result struct {
	Record           *models.WorkoutRecord // Сохранённая запись с меню
	RemainingTickets int                   // Баланс после списания
	SafetyNotes      []string              // Нарушения фильтра безопасности, возможно пустые
}

// Service — оркестратор генерации.
type Service struct {
	tickets  Tickets
	gate     Gate
	provider Provider
	workouts Workouts
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый оркестратор.
func New(tickets Tickets, gate Gate, provider Provider, workouts Workouts, log *slog.Logger) *Service {
	return &Service{
		tickets:  tickets,
		gate:     gate,
		provider: provider,
		workouts: workouts,
		log:      log,
		now:      time.Now,
	}
}

// Generate проводит один запрос через весь конвейер. Либо все шаги
// завершаются успехом, либо вызывающий получает ошибку, а списанный тикет
// компенсируется возвратной записью. Частичный успех наружу не виден.
//
// Проверка баланса и списание — два отдельных запроса без блокировки строки:
// два одновременных запроса одного пользователя при балансе 1 могут оба
// пройти проверку и увести баланс в минус. Для однопользовательского
// мобильного клиента это принятое ограничение.
func (s *Service) Generate(ctx context.Context, userUID string, params models.GenerateParams) (*Result, error) {
	const op = "generation.Generate"
	log := s.log.With(slog.String("op", op), sl.UID(userUID))

	// Шаг 1: допуск. До этой точки ничего не списано.
	if err := s.gate.Check(ctx, userUID, s.now()); err != nil {
		return nil, err
	}

	// Шаг 2: баланс.
	balance, err := s.tickets.Balance(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if balance < 1 {
		return nil, models.ErrInsufficientTickets
	}

	// Шаг 3: списание. С этого момента запрос в состоянии debited,
	// любой дальнейший отказ обязан попытаться вернуть тикет.
	debitID, err := s.tickets.Append(ctx, userUID, models.EntryConsume, -1, "AI workout generation", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.runDebited(ctx, userUID, params, log)
	if err != nil {
		s.refund(ctx, userUID, debitID, log)
		metrics.RecordGenerationFailure()
		return nil, err
	}

	metrics.RecordGenerationSuccess()
	return result, nil
}

// runDebited выполняет шаги после списания: генерацию, проверку
// безопасности, сохранение и фиксацию лимита.
func (s *Service) runDebited(ctx context.Context, userUID string, params models.GenerateParams, log *slog.Logger) (*Result, error) {
	const op = "generation.runDebited"

	// Шаг 4: генерация. Один вызов, без повторов: любая ошибка
	// провайдера терминальна для всего запроса.
	menu, err := s.provider.Generate(ctx, params)
	if err != nil {
		log.Error("provider call failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrProviderFailure, err)
	}

	// Шаг 5: фильтр безопасности. Сегодня только сообщает о нарушениях,
	// меню возвращает как есть.
	checked := safety.Check(menu, params)
	menu = checked.Menu
	if len(checked.Violations) > 0 {
		log.Warn("safety violations reported", slog.Int("count", len(checked.Violations)))
	}

	// Шаг 6: сохранение.
	content, err := json.Marshal(menu)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec := models.WorkoutRecord{
		UserUID: userUID,
		Kind:    models.WorkoutGenerated,
		Title:   menu.Title,
		Content: content,
		Params:  paramsJSON,
	}
	id, err := s.workouts.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.ID = id

	// Шаг 7: фиксация лимита — только после успешного сохранения.
	if err := s.gate.RecordGeneration(ctx, userUID, s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	remaining, err := s.tickets.Balance(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Result{
		Record:           &rec,
		RemainingTickets: remaining,
		SafetyNotes:      checked.Violations,
	}, nil
}

// refund однократно пытается компенсировать списанный тикет. Отказ возврата
// только логируется и не меняет ошибку, которую увидит вызывающий: в этом
// редком двойном отказе пользователь теряет тикет безвозвратно.
func (s *Service) refund(ctx context.Context, userUID, debitID string, log *slog.Logger) {
	_, err := s.tickets.Append(ctx, userUID, models.EntryRefund, 1,
		"Refund due to generation failure", &debitID)
	if err != nil {
		log.Error("failed to refund ticket", slog.String("debit_id", debitID), sl.Err(err))
		return
	}
	metrics.RecordTicketRefund()
	log.Info("ticket refunded", slog.String("debit_id", debitID))
}
