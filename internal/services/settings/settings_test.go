package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/membership-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetSettings(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}
func (m *RepoMock) UpdateSettings(ctx context.Context, settings models.Settings) error {
	return m.Called(ctx, settings).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSettingsService_Get(t *testing.T) {
	stored := &models.Settings{BillingCycle: models.BillingCycleYearly, Company: "Example Org"}

	t.Run("cache miss reads repo and caches", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger())

		cache.On("Get", "membership:settings", mock.Anything).Return(false, nil).Once()
		repo.On("GetSettings", mock.Anything).Return(stored, nil).Once()
		cache.On("Set", "membership:settings", stored, time.Hour).Return(nil).Once()

		got, err := svc.Get(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, stored, got)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repo", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger())

		cache.On("Get", "membership:settings", mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.Settings)
			*ptr = stored
		}).Once()

		got, err := svc.Get(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, stored, got)

		repo.AssertNotCalled(t, "GetSettings", mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("cache error falls back to repo", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger())

		cache.On("Get", "membership:settings", mock.Anything).Return(false, errors.New("redis down")).Once()
		repo.On("GetSettings", mock.Anything).Return(stored, nil).Once()
		cache.On("Set", "membership:settings", stored, time.Hour).Return(errors.New("redis down")).Once()

		got, err := svc.Get(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, stored, got)
	})
}

func TestSettingsService_Update(t *testing.T) {
	updated := models.Settings{BillingCycle: models.BillingCycleMonthly}

	t.Run("update invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger())

		repo.On("UpdateSettings", mock.Anything, updated).Return(nil).Once()
		cache.On("Invalidate", "membership:settings").Return(nil).Once()

		err := svc.Update(context.Background(), updated)
		assert.NoError(t, err)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("repo error skips invalidation", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger())

		repo.On("UpdateSettings", mock.Anything, updated).Return(errors.New("db error")).Once()

		err := svc.Update(context.Background(), updated)
		assert.Error(t, err)

		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})
}
