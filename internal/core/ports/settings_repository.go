package ports

import (
	"context"

	"workshop/internal/core/domain/model/settings"
)

// SettingsRepository stores the single settings record.
type SettingsRepository interface {
	// Get returns the stored settings, or defaults when none were saved yet.
	Get(ctx context.Context) (*settings.Settings, error)

	// Save creates or replaces the stored settings.
	Save(ctx context.Context, s *settings.Settings) error
}
