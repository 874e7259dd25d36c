// Package costconfigrepo persists the cost-model configuration as a single
// row. Until an admin saves one, reads fall back to the built-in defaults.
package costconfigrepo

import (
	"production/internal/core/domain/model/costing"
	"production/internal/core/domain/model/product"
)

// costConfigRowID pins the configuration to one well-known row.
const costConfigRowID = 1

// CostConfigDTO represents the database structure for the cost-model
// factors. The per-edge-class maps are stored as JSONB keyed by the edge
// class wire name.
type CostConfigDTO struct {
	ID                  int `gorm:"primaryKey"`
	LagFactor           float64
	CuttingFactor       float64
	IroningFactor       float64
	PrepackingFactor    float64
	PackingFactor       float64
	CornerSewingFactors map[string]float64 `gorm:"serializer:json;type:jsonb"`
	SewingFactors       map[string]float64 `gorm:"serializer:json;type:jsonb"`
	MaterialWasteCm     map[string]int     `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for the cost configuration.
func (CostConfigDTO) TableName() string {
	return "cost_configs"
}

// fromDomain converts a cost configuration to its database representation.
func fromDomain(cfg costing.Config) CostConfigDTO {
	cornerSewing := make(map[string]float64)
	for class, f := range cfg.CornerSewingFactors() {
		cornerSewing[class.String()] = f
	}
	sewing := make(map[string]float64)
	for class, f := range cfg.SewingFactors() {
		sewing[class.String()] = f
	}
	waste := make(map[string]int)
	for class, w := range cfg.MaterialWasteCms() {
		waste[class.String()] = w
	}

	return CostConfigDTO{
		ID:                  costConfigRowID,
		LagFactor:           cfg.LagFactor(),
		CuttingFactor:       cfg.CuttingFactor(),
		IroningFactor:       cfg.IroningFactor(),
		PrepackingFactor:    cfg.PrepackingFactor(),
		PackingFactor:       cfg.PackingFactor(),
		CornerSewingFactors: cornerSewing,
		SewingFactors:       sewing,
		MaterialWasteCm:     waste,
	}
}

// toDomain converts a database DTO to a cost configuration.
func toDomain(dto CostConfigDTO) (costing.Config, error) {
	cornerSewing := make(map[product.EdgeClass]float64, len(dto.CornerSewingFactors))
	for name, f := range dto.CornerSewingFactors {
		class, err := product.EdgeClassFromString(name)
		if err != nil {
			return costing.Config{}, err
		}
		cornerSewing[class] = f
	}

	sewing := make(map[product.EdgeClass]float64, len(dto.SewingFactors))
	for name, f := range dto.SewingFactors {
		class, err := product.EdgeClassFromString(name)
		if err != nil {
			return costing.Config{}, err
		}
		sewing[class] = f
	}

	waste := make(map[product.EdgeClass]int, len(dto.MaterialWasteCm))
	for name, w := range dto.MaterialWasteCm {
		class, err := product.EdgeClassFromString(name)
		if err != nil {
			return costing.Config{}, err
		}
		waste[class] = w
	}

	return costing.NewConfig(
		dto.LagFactor, dto.CuttingFactor, dto.IroningFactor,
		dto.PrepackingFactor, dto.PackingFactor,
		cornerSewing, sewing, waste)
}
