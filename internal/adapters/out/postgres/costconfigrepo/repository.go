package costconfigrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/costing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCostConfigRepository implements CostConfigRepository using GORM.
type GormCostConfigRepository struct {
	db *gorm.DB
}

// NewGormCostConfigRepository creates a new GORM cost configuration repository.
func NewGormCostConfigRepository(db *gorm.DB) *GormCostConfigRepository {
	return &GormCostConfigRepository{db: db}
}

// Get retrieves the saved cost configuration. When nothing has been saved
// yet, the built-in defaults are returned.
func (r *GormCostConfigRepository) Get(ctx context.Context) (costing.Config, error) {
	var dto CostConfigDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", costConfigRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return costing.DefaultConfig(), nil
		}
		return costing.Config{}, err
	}

	return toDomain(dto)
}

// Save upserts the cost configuration.
func (r *GormCostConfigRepository) Save(ctx context.Context, cfg costing.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(cfg)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
