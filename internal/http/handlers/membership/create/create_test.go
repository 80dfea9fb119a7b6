package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/membership-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/membership-service/internal/models"
	"github.com/magabrotheeeer/membership-service/internal/services/membership"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, username, role string, req models.DummyMembership) (int, error) {
	args := m.Called(ctx, username, role, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		username       string
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное оформление членства",
			body:     `{"membership_type":"Gold","paid":true,"currency":"INR","amount":1000}`,
			username: "testuser",
			role:     "user",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", "user", mock.MatchedBy(func(req models.DummyMembership) bool {
					return req.MembershipType == "Gold" && req.Paid && req.Amount == 1000
				})).Return(42, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"last_added_id":42`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			username:       "testuser",
			role:           "user",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "отсутствует membership_type",
			body:           `{"paid":true}`,
			username:       "testuser",
			role:           "user",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `MembershipType`,
		},
		{
			name:           "пользователь не авторизован",
			body:           `{"membership_type":"Gold"}`,
			username:       "",
			role:           "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:     "продление раньше срока",
			body:     `{"membership_type":"Gold"}`,
			username: "testuser",
			role:     "user",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", "user", mock.Anything).
					Return(0, membership.ErrTooEarlyToRenew).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `expires within 30 days`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"membership_type":"Gold"}`,
			username: "testuser",
			role:     "user",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", "user", mock.Anything).
					Return(0, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create membership`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/memberships", strings.NewReader(tt.body))
			if tt.username != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
				ctx = context.WithValue(ctx, middlewarectx.Role, tt.role)
				req = req.WithContext(ctx)
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
