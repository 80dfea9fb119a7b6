// Package settings предоставляет доступ к единственной записи настроек
// членств с кешированием в Redis.
package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-service/internal/models"
)

const cacheKey = "membership:settings"

// SettingsRepository определяет методы для чтения и записи настроек в хранилище.
type SettingsRepository interface {
	// GetSettings возвращает запись настроек.
	GetSettings(ctx context.Context) (*models.Settings, error)
	// UpdateSettings перезаписывает запись настроек.
	UpdateSettings(ctx context.Context, settings models.Settings) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service отдаёт настройки из кеша, при промахе — из хранилища.
type Service struct {
	repo  SettingsRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo SettingsRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Get возвращает настройки членств, используя кеш или хранилище.
func (s *Service) Get(ctx context.Context) (*models.Settings, error) {
	var cached *models.Settings
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read settings from cache", slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, settings, time.Hour); err != nil {
		s.log.Warn("failed to cache settings", slog.Any("err", err))
	}
	return settings, nil
}

// Update перезаписывает настройки и инвалидирует кеш.
func (s *Service) Update(ctx context.Context, settings models.Settings) error {
	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return err
	}
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate settings cache", slog.Any("err", err))
	}
	return nil
}
