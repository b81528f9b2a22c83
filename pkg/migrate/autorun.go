package migrate

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	"github.com/OmerAlfiel/Shahen-website/pkg/db/models"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
)

// Schema lists the models gorm synchronizes in development.
var Schema = []any{&models.Contact{}}

// Apply brings the schema up to date after a connection is established.
// Development and SQLite runs synchronize the models directly; every other
// environment applies the embedded goose migrations.
func Apply(ctx context.Context, cfg *config.Config, logg *logger.Logger, conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db connection is required")
	}

	if cfg.App.IsDev() || cfg.FeatureFlags.UseSQLite || cfg.FeatureFlags.AutoMigrate {
		if err := conn.WithContext(ctx).AutoMigrate(Schema...); err != nil {
			return fmt.Errorf("auto-migrating schema: %w", err)
		}
		if logg != nil {
			logg.Info(ctx, "database schema synchronized")
		}
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	applied, err := UpEmbedded(ctx, sqlDB)
	if err != nil {
		return err
	}
	if logg != nil {
		if applied > 0 {
			logg.Info(logg.WithField(ctx, "applied", applied), "migrations executed")
		} else {
			logg.Info(ctx, "no pending migrations")
		}
	}
	return nil
}
