package me

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fitforge/workout-api/internal/http/middlewarectx"
	"github.com/fitforge/workout-api/internal/models"
)

// MockService реализует интерфейс me.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Identity(ctx context.Context, uid string) (*models.User, int, error) {
	args := m.Called(ctx, uid)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func TestMeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		header         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "известный пользователь",
			header: "user-1",
			setupMock: func(m *MockService) {
				m.On("Identity", mock.Anything, "user-1").
					Return(&models.User{UID: "user-1"}, 3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"ticket_balance":3`,
		},
		{
			// Отсутствие заголовка и несуществующий пользователь здесь
			// различимы: 401 против 404.
			name:           "заголовок отсутствует",
			header:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"code":"UNAUTHORIZED"`,
		},
		{
			name:   "несуществующий пользователь",
			header: "ghost",
			setupMock: func(m *MockService) {
				m.On("Identity", mock.Anything, "ghost").
					Return(nil, 0, models.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"code":"NOT_FOUND"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(middlewarectx.UserHeader, tt.header)
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
