package user_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitforge/workout-api/internal/models"
	"github.com/fitforge/workout-api/internal/services/user"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) ReadUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type TicketsMock struct{ mock.Mock }

func (m *TicketsMock) Append(ctx context.Context, userUID string, kind models.EntryKind, amount int, description string, referenceID *string) (string, error) {
	args := m.Called(ctx, userUID, kind, amount, description, referenceID)
	return args.String(0), args.Error(1)
}
func (m *TicketsMock) Balance(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegisterAnonymous_GrantsWelcomeTickets(t *testing.T) {
	repo := new(RepoMock)
	tickets := new(TicketsMock)

	repo.On("CreateUser", mock.Anything).Return(&models.User{
		UID:       "user-1",
		CreatedAt: time.Now(),
	}, nil)
	tickets.On("Append", mock.Anything, "user-1", models.EntryGrant, 3, "Welcome bonus", (*string)(nil)).
		Return("entry-1", nil)

	svc := user.New(repo, tickets, 3, testLogger())
	usr, balance, err := svc.RegisterAnonymous(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "user-1", usr.UID)
	assert.Equal(t, 3, balance)
	tickets.AssertExpectations(t)
}

func TestIdentity(t *testing.T) {
	repo := new(RepoMock)
	tickets := new(TicketsMock)

	repo.On("ReadUser", mock.Anything, "user-1").Return(&models.User{UID: "user-1"}, nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(2, nil)

	svc := user.New(repo, tickets, 3, testLogger())
	usr, balance, err := svc.Identity(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", usr.UID)
	assert.Equal(t, 2, balance)
}

func TestIdentity_UnknownUser(t *testing.T) {
	repo := new(RepoMock)
	tickets := new(TicketsMock)

	repo.On("ReadUser", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound)

	svc := user.New(repo, tickets, 3, testLogger())
	_, _, err := svc.Identity(context.Background(), "ghost")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	tickets.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
}
