package generation_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitforge/workout-api/internal/models"
	"github.com/fitforge/workout-api/internal/services/generation"
)

type TicketsMock struct{ mock.Mock }

func (m *TicketsMock) Balance(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}
func (m *TicketsMock) Append(ctx context.Context, userUID string, kind models.EntryKind, amount int, description string, referenceID *string) (string, error) {
	args := m.Called(ctx, userUID, kind, amount, description, referenceID)
	return args.String(0), args.Error(1)
}

type GateMock struct{ mock.Mock }

func (m *GateMock) Check(ctx context.Context, userUID string, now time.Time) error {
	return m.Called(ctx, userUID, now).Error(0)
}
func (m *GateMock) RecordGeneration(ctx context.Context, userUID string, now time.Time) error {
	return m.Called(ctx, userUID, now).Error(0)
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) Generate(ctx context.Context, params models.GenerateParams) (*models.Menu, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Menu), args.Error(1)
}

type WorkoutsMock struct{ mock.Mock }

func (m *WorkoutsMock) Create(ctx context.Context, rec models.WorkoutRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testParams() models.GenerateParams {
	return models.GenerateParams{
		Goal:      "strength",
		Duration:  30,
		Location:  "home",
		Equipment: "none",
		Frequency: 3,
	}
}

func testMenu() *models.Menu {
	return &models.Menu{
		SchemaVersion: models.MenuSchemaVersion,
		Title:         "筋力アップワークアウト（30分）",
		Main: []models.Exercise{
			{Name: "スクワット", Sets: 3, Reps: "12-15回", Rest: "60秒"},
		},
		TotalTime: 30,
	}
}

func TestGenerate_Success(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(3, nil).Once()
	tickets.On("Append", mock.Anything, "user-1", models.EntryConsume, -1, "AI workout generation", (*string)(nil)).
		Return("debit-1", nil)
	prov.On("Generate", mock.Anything, testParams()).Return(testMenu(), nil)
	workouts.On("Create", mock.Anything, mock.MatchedBy(func(rec models.WorkoutRecord) bool {
		return rec.Kind == models.WorkoutGenerated && rec.UserUID == "user-1"
	})).Return("workout-1", nil)
	gate.On("RecordGeneration", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(2, nil).Once()

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	result, err := svc.Generate(context.Background(), "user-1", testParams())

	require.NoError(t, err)
	assert.Equal(t, "workout-1", result.Record.ID)
	assert.Equal(t, 2, result.RemainingTickets)
	assert.Empty(t, result.SafetyNotes)

	var menu models.Menu
	require.NoError(t, json.Unmarshal(result.Record.Content, &menu))
	assert.Equal(t, "筋力アップワークアウト（30分）", menu.Title)

	tickets.AssertExpectations(t)
	gate.AssertExpectations(t)
	workouts.AssertExpectations(t)
}

func TestGenerate_GateRejectsBeforeDebit(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(models.ErrDailyLimitReached)

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	_, err := svc.Generate(context.Background(), "user-1", testParams())

	assert.ErrorIs(t, err, models.ErrDailyLimitReached)
	// До допуска ничего не списывается.
	tickets.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_InsufficientTickets(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(0, nil)

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	_, err := svc.Generate(context.Background(), "user-1", testParams())

	assert.ErrorIs(t, err, models.ErrInsufficientTickets)
	tickets.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_ProviderFailureRefunds(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(1, nil)
	tickets.On("Append", mock.Anything, "user-1", models.EntryConsume, -1, "AI workout generation", (*string)(nil)).
		Return("debit-1", nil)
	prov.On("Generate", mock.Anything, testParams()).Return(nil, errors.New("llm exploded"))
	// Возврат ссылается на запись списания.
	tickets.On("Append", mock.Anything, "user-1", models.EntryRefund, 1, "Refund due to generation failure",
		mock.MatchedBy(func(ref *string) bool { return ref != nil && *ref == "debit-1" })).
		Return("refund-1", nil)

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	_, err := svc.Generate(context.Background(), "user-1", testParams())

	assert.ErrorIs(t, err, models.ErrProviderFailure)
	tickets.AssertExpectations(t)
	gate.AssertNotCalled(t, "RecordGeneration", mock.Anything, mock.Anything, mock.Anything)
	workouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerate_PersistFailureRefunds(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(1, nil)
	tickets.On("Append", mock.Anything, "user-1", models.EntryConsume, -1, "AI workout generation", (*string)(nil)).
		Return("debit-1", nil)
	prov.On("Generate", mock.Anything, testParams()).Return(testMenu(), nil)
	workouts.On("Create", mock.Anything, mock.Anything).Return("", errors.New("db down"))
	tickets.On("Append", mock.Anything, "user-1", models.EntryRefund, 1, "Refund due to generation failure",
		mock.MatchedBy(func(ref *string) bool { return ref != nil && *ref == "debit-1" })).
		Return("refund-1", nil)

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	_, err := svc.Generate(context.Background(), "user-1", testParams())

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrProviderFailure)
	tickets.AssertExpectations(t)
	gate.AssertNotCalled(t, "RecordGeneration", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_RefundFailureIsSwallowed(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(1, nil)
	tickets.On("Append", mock.Anything, "user-1", models.EntryConsume, -1, "AI workout generation", (*string)(nil)).
		Return("debit-1", nil)
	providerErr := errors.New("llm exploded")
	prov.On("Generate", mock.Anything, testParams()).Return(nil, providerErr)
	tickets.On("Append", mock.Anything, "user-1", models.EntryRefund, 1, "Refund due to generation failure", mock.Anything).
		Return("", errors.New("refund also failed"))

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	_, err := svc.Generate(context.Background(), "user-1", testParams())

	// Наружу уходит исходная ошибка, а не отказ возврата.
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrProviderFailure)
	assert.NotContains(t, err.Error(), "refund also failed")
}

func TestGenerate_SafetyNotesReported(t *testing.T) {
	tickets := new(TicketsMock)
	gate := new(GateMock)
	prov := new(ProviderMock)
	workouts := new(WorkoutsMock)

	params := testParams()
	params.Restrictions = []string{"knee"}

	menu := testMenu()
	menu.Main = append(menu.Main, models.Exercise{Name: "ボックスジャンプ", Sets: 3, Reps: "10回", Rest: "60秒"})

	gate.On("Check", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(2, nil).Once()
	tickets.On("Append", mock.Anything, "user-1", models.EntryConsume, -1, "AI workout generation", (*string)(nil)).
		Return("debit-1", nil)
	prov.On("Generate", mock.Anything, params).Return(menu, nil)
	workouts.On("Create", mock.Anything, mock.Anything).Return("workout-1", nil)
	gate.On("RecordGeneration", mock.Anything, "user-1", mock.Anything).Return(nil)
	tickets.On("Balance", mock.Anything, "user-1").Return(1, nil).Once()

	svc := generation.New(tickets, gate, prov, workouts, testLogger())
	result, err := svc.Generate(context.Background(), "user-1", params)

	require.NoError(t, err)
	require.Len(t, result.SafetyNotes, 1)
	assert.Contains(t, result.SafetyNotes[0], "ボックスジャンプ")

	// Меню сохраняется без изменений: фильтр только сообщает о нарушениях.
	var stored models.Menu
	require.NoError(t, json.Unmarshal(result.Record.Content, &stored))
	assert.Len(t, stored.Main, 2)
}
