package costing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"production/internal/core/domain/model/costing"
	"production/internal/core/domain/model/product"
)

func TestNewConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := costing.NewConfig(0.5, 1.0, 0.5, 0.3, 0.2,
			map[product.EdgeClass]float64{product.EdgeO5: 0.7},
			map[product.EdgeClass]float64{product.EdgeO5: 1.5},
			map[product.EdgeClass]int{product.EdgeO5: 13})

		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 0.5, cfg.LagFactor())
		assert.Equal(t, 0.7, cfg.CornerSewingFactor(product.EdgeO5))
	})

	t.Run("negative scalar factor is rejected", func(t *testing.T) {
		_, err := costing.NewConfig(-0.1, 1.0, 0.5, 0.3, 0.2, nil, nil, nil)
		assert.Error(t, err)
	})

	t.Run("invalid edge class in a map is rejected", func(t *testing.T) {
		_, err := costing.NewConfig(0.5, 1.0, 0.5, 0.3, 0.2,
			map[product.EdgeClass]float64{product.UnknownEdgeClass: 0.7}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cfg costing.Config
		assert.ErrorIs(t, cfg.Validate(), costing.ErrConfigIsNotConstructed)
	})
}

func TestConfigFallbacks(t *testing.T) {
	cfg, err := costing.NewConfig(0.5, 1.0, 0.5, 0.3, 0.2, nil, nil, nil)
	require.NoError(t, err)

	// Sparse maps fall back to the designated defaults.
	assert.Equal(t, 0.6708, cfg.CornerSewingFactor(product.EdgeLA))
	assert.Equal(t, 1.489, cfg.SewingFactor(product.EdgeLA))
	assert.Equal(t, 13, cfg.MaterialWasteCm(product.EdgeLA))
}

func TestDefaultConfig(t *testing.T) {
	cfg := costing.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.35, cfg.LagFactor())
	assert.Equal(t, 1.86, cfg.CuttingFactor())
	assert.Equal(t, 13, cfg.MaterialWasteCm(product.EdgeO5))

	// OGK pieces are cut undersize.
	assert.Equal(t, -16, cfg.MaterialWasteCm(product.EdgeOGK))
}

func TestConfigMapsAreCopied(t *testing.T) {
	in := map[product.EdgeClass]float64{product.EdgeO5: 0.7}
	cfg, err := costing.NewConfig(0.5, 1.0, 0.5, 0.3, 0.2, in, nil, nil)
	require.NoError(t, err)

	in[product.EdgeO5] = 99.0
	assert.Equal(t, 0.7, cfg.CornerSewingFactor(product.EdgeO5))

	out := cfg.CornerSewingFactors()
	out[product.EdgeO5] = 42.0
	assert.Equal(t, 0.7, cfg.CornerSewingFactor(product.EdgeO5))
}
