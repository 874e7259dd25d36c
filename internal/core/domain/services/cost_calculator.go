package services

import (
	"fmt"
	"math"

	"production/internal/core/domain/model/costing"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/product"
	"production/internal/pkg/errs"
)

// CostCalculator prices one ledger action. It is a pure domain service: no
// I/O, no state, the same inputs always produce the same cost.
//
// The cutting stage works on extended dimensions (nominal plus the per-edge
// material-waste allowance); sewing, ironing and packing use nominal
// dimensions. Missing optional product fields never fail the calculation:
// an absent edge class falls back to the default class's factors and
// missing dimensions fall back to a fixed default, since cost is advisory
// rather than authoritative.
type CostCalculator struct{}

// NewCostCalculator creates a cost calculator service.
func NewCostCalculator() *CostCalculator {
	return &CostCalculator{}
}

// Calculate returns the total cost of an action (already multiplied by
// quantity), rounded to the currency's minor unit. The only failure is a
// non-positive quantity, which the ledger rejects before pricing anyway.
func (c *CostCalculator) Calculate(
	stage order.Stage,
	prod *product.Product,
	quantity int,
	cfg costing.Config,
) (float64, error) {
	if err := stage.Validate(); err != nil {
		return 0, err
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if quantity <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	width := costing.DefaultDimensionCm
	height := costing.DefaultDimensionCm
	if prod != nil {
		if prod.Width() != nil {
			width = *prod.Width()
		}
		if prod.Height() != nil {
			height = *prod.Height()
		}
	}

	edgeClass := product.EdgeO5
	if prod != nil && prod.EdgeClass() != nil {
		edgeClass = *prod.EdgeClass()
	}

	qty := float64(quantity)
	var cost float64

	switch stage {
	case order.StageCutting:
		waste := cfg.MaterialWasteCm(edgeClass)
		extWidth := float64(width + waste)
		extHeight := float64(height + waste)
		lag := extWidth * 0.01 * extHeight * 0.01 * cfg.LagFactor()
		cutting := (extWidth + extHeight) * 0.01 * cfg.CuttingFactor()
		cost = (lag + cutting) * qty

	case order.StageSewing:
		corner := 4 * cfg.CornerSewingFactor(edgeClass)
		edge := 2 * float64(width+height) * 0.01 * cfg.SewingFactor(edgeClass)
		cost = (corner + edge) * qty

	case order.StageIroning:
		if edgeClass.NoIron() {
			return 0, nil
		}
		cost = float64(width) * float64(height) * 0.0001 * cfg.IroningFactor() * qty

	case order.StagePacking:
		packing := float64(width) * float64(height) * 0.0001 * cfg.PackingFactor()
		cost = (cfg.PrepackingFactor() + packing) * qty
	}

	return roundToCent(cost), nil
}

// roundToCent rounds to the currency's minor-unit precision.
func roundToCent(v float64) float64 {
	return math.Round(v*100) / 100
}
