package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/pinecove/cabin-console/internal/cache"
	settingsDomain "github.com/pinecove/cabin-console/internal/domain/settings"
	"github.com/pinecove/cabin-console/internal/mutation"
)

// SettingsService manages the property-wide booking settings singleton.
type SettingsService struct {
	settings settingsDomain.Repository
	cache    *cache.Store
	notifier mutation.Notifier
	logger   *zap.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(
	settings settingsDomain.Repository,
	store *cache.Store,
	notifier mutation.Notifier,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settings: settings,
		cache:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// GetSettings retrieves the current settings.
func (s *SettingsService) GetSettings(ctx context.Context) (settingsDomain.Settings, error) {
	if cached, ok := s.cache.Get(cache.KeySettings); ok {
		if cfg, ok := cached.(settingsDomain.Settings); ok {
			return cfg, nil
		}
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return settingsDomain.Settings{}, err
	}

	s.cache.Set(cache.KeySettings, cfg)
	return cfg, nil
}

// UpdateSettings validates and replaces the stored settings.
func (s *SettingsService) UpdateSettings(ctx context.Context, cfg settingsDomain.Settings) (settingsDomain.Settings, error) {
	if err := cfg.Validate(); err != nil {
		return settingsDomain.Settings{}, err
	}

	m := mutation.Run(ctx, s.notifier, mutation.Spec[settingsDomain.Settings]{
		Messages: mutation.Messages{
			Pending:   "Updating settings...",
			Succeeded: "Settings successfully updated",
			Failed:    "Could not update settings",
		},
		Do: func(ctx context.Context) (settingsDomain.Settings, error) {
			return s.settings.Update(ctx, cfg)
		},
		OnSuccess: func(settingsDomain.Settings) { s.cache.Invalidate(cache.KeySettings) },
	})
	return m.Wait(ctx)
}
