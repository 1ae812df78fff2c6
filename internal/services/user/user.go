// Package user содержит бизнес-логику учётных записей: анонимную регистрацию
// с приветственным начислением тикетов и выдачу идентичности с балансом.
package user

import (
	"context"
	"log/slog"

	"github.com/fitforge/workout-api/internal/lib/sl"
	"github.com/fitforge/workout-api/internal/models"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	// CreateUser создаёт анонимного пользователя.
	CreateUser(ctx context.Context) (*models.User, error)
	// ReadUser возвращает пользователя по идентификатору.
	ReadUser(ctx context.Context, uid string) (*models.User, error)
}

// Tickets — часть журнала тикетов, нужная сервису пользователей.
type Tickets interface {
	Append(ctx context.Context, userUID string, kind models.EntryKind, amount int, description string, referenceID *string) (string, error)
	Balance(ctx context.Context, userUID string) (int, error)
}

// Service реализует бизнес-логику учётных записей.
type Service struct {
	repo           Repository
	tickets        Tickets
	welcomeTickets int
	log            *slog.Logger
}

// New создает новый Service. welcomeTickets — размер приветственного
// начисления при регистрации.
func New(repo Repository, tickets Tickets, welcomeTickets int, log *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		tickets:        tickets,
		welcomeTickets: welcomeTickets,
		log:            log,
	}
}

// RegisterAnonymous создаёт нового анонимного пользователя и начисляет ему
// приветственные тикеты. Возвращает пользователя и его стартовый баланс.
func (s *Service) RegisterAnonymous(ctx context.Context) (*models.User, int, error) {
	usr, err := s.repo.CreateUser(ctx)
	if err != nil {
		return nil, 0, err
	}

	if _, err := s.tickets.Append(ctx, usr.UID, models.EntryGrant, s.welcomeTickets, "Welcome bonus", nil); err != nil {
		s.log.Error("failed to grant welcome tickets", sl.UID(usr.UID), sl.Err(err))
		return nil, 0, err
	}

	s.log.Info("anonymous user registered", sl.UID(usr.UID))
	return usr, s.welcomeTickets, nil
}

// Identity возвращает пользователя и его текущий баланс тикетов.
func (s *Service) Identity(ctx context.Context, uid string) (*models.User, int, error) {
	usr, err := s.repo.ReadUser(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	balance, err := s.tickets.Balance(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	return usr, balance, nil
}
