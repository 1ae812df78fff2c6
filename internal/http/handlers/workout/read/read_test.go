package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID, id string) (*models.WorkoutRecord, error) {
	args := m.Called(ctx, userUID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.WorkoutRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		uid            string
		workoutID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное чтение тренировки",
			uid:       "user-1",
			workoutID: "workout-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-1", "workout-1").Return(&models.WorkoutRecord{
					ID:      "workout-1",
					UserUID: "user-1",
					Kind:    models.WorkoutGenerated,
					Title:   "筋力アップワークアウト（30分）",
					Content: []byte(`{"schema_version":1,  "title":"筋力アップワークアウト（30分）"}`),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			// Содержимое отдаётся сохранённым документом, байт в байт.
			expectedBody: `"content":{"schema_version":1,  "title":"筋力アップワークアウト（30分）"}`,
		},
		{
			name:      "тренировка не найдена",
			uid:       "user-1",
			workoutID: "ghost",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-1", "ghost").Return(nil, models.ErrWorkoutNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"code":"NOT_FOUND"`,
		},
		{
			name:      "чужая тренировка неотличима от несуществующей",
			uid:       "user-2",
			workoutID: "workout-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-2", "workout-1").Return(nil, models.ErrWorkoutNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"code":"NOT_FOUND"`,
		},
		{
			name:           "нет uid в контексте",
			uid:            "",
			workoutID:      "workout-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"code":"UNAUTHORIZED"`,
		},
		{
			name:      "ошибка сервиса",
			uid:       "user-1",
			workoutID: "workout-1",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "user-1", "workout-1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"code":"INTERNAL"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/workouts/"+tt.workoutID, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.workoutID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.uid != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.uid))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
