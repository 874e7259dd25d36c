// Package costing holds the cost-model configuration: the numeric factors
// the cost calculator applies per stage and per edge class.
//
// The configuration is a value object fetched once per operation and passed
// explicitly into the calculator, never a process-wide mutable global.
// Updating it produces a new version; costs already snapshotted on recorded
// actions are unaffected.
package costing

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/product"
	"production/internal/pkg/errs"
)

var (
	// ErrConfigIsNotConstructed is returned when a Config instance was not
	// created through NewConfig or DefaultConfig.
	ErrConfigIsNotConstructed = errors.New("Config must be created via NewConfig or DefaultConfig")
)

// Defaults applied when a product's edge class is absent or a per-class map
// has no entry for it.
const (
	// DefaultDimensionCm substitutes a missing nominal width or height.
	// Cost is advisory, so a plausible dimension beats a failure.
	DefaultDimensionCm = 100

	defaultCornerSewingFactor = 0.6708
	defaultSewingFactor       = 1.489
	defaultMaterialWasteCm    = 13
)

// Config carries the cost-model factors. Scalar factors apply per stage;
// the per-edge-class maps key corner sewing, edge sewing and material-waste
// allowance by finish.
type Config struct {
	lagFactor        float64
	cuttingFactor    float64
	ironingFactor    float64
	prepackingFactor float64
	packingFactor    float64

	cornerSewingFactors map[product.EdgeClass]float64
	sewingFactors       map[product.EdgeClass]float64
	materialWasteCm     map[product.EdgeClass]int

	isConstructed bool
}

// NewConfig creates a Config with validation. Scalar factors must be
// non-negative; the per-class maps may be sparse (lookups fall back to the
// designated defaults) but must not contain invalid classes.
func NewConfig(
	lagFactor, cuttingFactor, ironingFactor, prepackingFactor, packingFactor float64,
	cornerSewingFactors map[product.EdgeClass]float64,
	sewingFactors map[product.EdgeClass]float64,
	materialWasteCm map[product.EdgeClass]int,
) (Config, error) {
	for name, f := range map[string]float64{
		"lag factor":        lagFactor,
		"cutting factor":    cuttingFactor,
		"ironing factor":    ironingFactor,
		"prepacking factor": prepackingFactor,
		"packing factor":    packingFactor,
	} {
		if f < 0 {
			return Config{}, errs.NewValueIsInvalidErrorWithCause(name+" is invalid",
				fmt.Errorf("%f is negative", f))
		}
	}

	for class := range cornerSewingFactors {
		if err := class.Validate(); err != nil {
			return Config{}, err
		}
	}
	for class := range sewingFactors {
		if err := class.Validate(); err != nil {
			return Config{}, err
		}
	}
	for class := range materialWasteCm {
		if err := class.Validate(); err != nil {
			return Config{}, err
		}
	}

	return Config{
		lagFactor:           lagFactor,
		cuttingFactor:       cuttingFactor,
		ironingFactor:       ironingFactor,
		prepackingFactor:    prepackingFactor,
		packingFactor:       packingFactor,
		cornerSewingFactors: copyFloatMap(cornerSewingFactors),
		sewingFactors:       copyFloatMap(sewingFactors),
		materialWasteCm:     copyIntMap(materialWasteCm),
		isConstructed:       true,
	}, nil
}

// DefaultConfig returns the factory-calibrated factors used until an admin
// saves their own.
func DefaultConfig() Config {
	cfg, _ := NewConfig(
		0.35,   // lag
		1.86,   // cutting
		0.65,   // ironing
		0.3539, // prepacking
		0.2045, // packing
		map[product.EdgeClass]float64{
			product.EdgeU3:  0.084,
			product.EdgeU4:  0.084,
			product.EdgeU5:  0.084,
			product.EdgeO1:  0.1183,
			product.EdgeO3:  0.6708,
			product.EdgeO5:  0.6708,
			product.EdgeOGK: 1.254,
			product.EdgeLA:  0.1183,
		},
		map[product.EdgeClass]float64{
			product.EdgeU3:  0.1593,
			product.EdgeU4:  0.1593,
			product.EdgeU5:  0.1593,
			product.EdgeO1:  0.7847,
			product.EdgeO3:  1.489,
			product.EdgeO5:  1.489,
			product.EdgeOGK: 1.995,
			product.EdgeLA:  2.8,
		},
		map[product.EdgeClass]int{
			product.EdgeU3:  2,
			product.EdgeU4:  2,
			product.EdgeU5:  2,
			product.EdgeO1:  5,
			product.EdgeO3:  9,
			product.EdgeO5:  13,
			product.EdgeOGK: -16,
			product.EdgeLA:  1,
		},
	)
	return cfg
}

// Validate ensures the Config instance was properly constructed.
func (c Config) Validate() error {
	if !c.isConstructed {
		return ErrConfigIsNotConstructed
	}
	return nil
}

// LagFactor returns the area factor for the cutting stage.
func (c Config) LagFactor() float64 {
	return c.lagFactor
}

// CuttingFactor returns the perimeter factor for the cutting stage.
func (c Config) CuttingFactor() float64 {
	return c.cuttingFactor
}

// IroningFactor returns the area factor for the ironing stage.
func (c Config) IroningFactor() float64 {
	return c.ironingFactor
}

// PrepackingFactor returns the fixed per-unit packing preparation cost.
func (c Config) PrepackingFactor() float64 {
	return c.prepackingFactor
}

// PackingFactor returns the area factor for the packing stage.
func (c Config) PackingFactor() float64 {
	return c.packingFactor
}

// CornerSewingFactor returns the per-corner sewing cost for the class,
// falling back to the default when the class has no entry.
func (c Config) CornerSewingFactor(class product.EdgeClass) float64 {
	if f, ok := c.cornerSewingFactors[class]; ok {
		return f
	}
	return defaultCornerSewingFactor
}

// SewingFactor returns the per-meter edge sewing cost for the class,
// falling back to the default when the class has no entry.
func (c Config) SewingFactor(class product.EdgeClass) float64 {
	if f, ok := c.sewingFactors[class]; ok {
		return f
	}
	return defaultSewingFactor
}

// MaterialWasteCm returns the per-edge material-waste allowance in
// centimeters added to each nominal dimension before cutting. OGK pieces
// are cut undersize, so the allowance can be negative.
func (c Config) MaterialWasteCm(class product.EdgeClass) int {
	if w, ok := c.materialWasteCm[class]; ok {
		return w
	}
	return defaultMaterialWasteCm
}

// CornerSewingFactors returns a copy of the per-class corner sewing map.
func (c Config) CornerSewingFactors() map[product.EdgeClass]float64 {
	return copyFloatMap(c.cornerSewingFactors)
}

// SewingFactors returns a copy of the per-class edge sewing map.
func (c Config) SewingFactors() map[product.EdgeClass]float64 {
	return copyFloatMap(c.sewingFactors)
}

// MaterialWasteCms returns a copy of the per-class material-waste map.
func (c Config) MaterialWasteCms() map[product.EdgeClass]int {
	return copyIntMap(c.materialWasteCm)
}

func copyFloatMap(m map[product.EdgeClass]float64) map[product.EdgeClass]float64 {
	out := make(map[product.EdgeClass]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntMap(m map[product.EdgeClass]int) map[product.EdgeClass]int {
	out := make(map[product.EdgeClass]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
