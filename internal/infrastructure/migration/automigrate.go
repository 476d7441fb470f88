package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reelgate-inc/reelgate/internal/infrastructure/persistence/models"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// AutoMigrateModels lists every table owned by this service.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.EntitlementModel{},
		&models.CheckoutSessionModel{},
		&models.UserProfileModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Intended for local development and tests.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: log.With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	modelList := AutoMigrateModels()
	if err := db.WithContext(ctx).AutoMigrate(modelList...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed", "models_count", len(modelList))
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return ToolAutoMigrate
}
