package settingsrepo

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSettingsRepository creates the repository. now stamps the defaults
// returned before anything was saved; nil means time.Now.
func NewGormSettingsRepository(db *gorm.DB, now func() time.Time) *GormSettingsRepository {
	if now == nil {
		now = time.Now
	}
	return &GormSettingsRepository{db: db, now: now}
}

// Get returns the stored settings or the defaults.
func (r *GormSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	var dto SettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settings.DefaultSettings(r.now()), nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

// Save upserts the settings row.
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
