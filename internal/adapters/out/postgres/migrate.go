package postgres

import (
	"context"

	"workshop/internal/adapters/out/postgres/clientrepo"
	"workshop/internal/adapters/out/postgres/orderrepo"
	"workshop/internal/adapters/out/postgres/settingsrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table.
func Models() []any {
	return []any{&clientrepo.ClientDTO{}, &orderrepo.OrderDTO{}, &settingsrepo.SettingsDTO{}}
}

// Migrate creates or alters the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
