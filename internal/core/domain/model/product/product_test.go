package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"
)

func intPtr(v int) *int {
	return &v
}

func TestNewProduct(t *testing.T) {
	edge := product.EdgeO5

	t.Run("valid rectangular product", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), "TBL-140", "linen", "herringbone",
			product.Rectangular, intPtr(140), intPtr(220), nil, &edge)

		require.NoError(t, err)
		assert.Equal(t, "TBL-140", p.SKU())
		assert.Equal(t, 140, *p.Width())
		assert.Equal(t, 220, *p.Height())
		assert.Nil(t, p.Diameter())
		assert.Equal(t, product.EdgeO5, *p.EdgeClass())
	})

	t.Run("round product with diameter only", func(t *testing.T) {
		p, err := product.NewProduct(kernel.NewUUID(), "RND-90", "cotton", "plain",
			product.Round, nil, nil, intPtr(90), nil)

		require.NoError(t, err)
		assert.Nil(t, p.Width())
		assert.Equal(t, 90, *p.Diameter())
		assert.Nil(t, p.EdgeClass())
	})

	t.Run("missing dimensions are allowed", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "UNK-1", "linen", "plain",
			product.Rectangular, nil, nil, nil, nil)
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		build func() error
	}{
		{"empty sku", func() error {
			_, err := product.NewProduct(kernel.NewUUID(), "", "linen", "plain", product.Rectangular, nil, nil, nil, nil)
			return err
		}},
		{"empty fabric", func() error {
			_, err := product.NewProduct(kernel.NewUUID(), "X", "", "plain", product.Rectangular, nil, nil, nil, nil)
			return err
		}},
		{"empty pattern", func() error {
			_, err := product.NewProduct(kernel.NewUUID(), "X", "linen", "", product.Rectangular, nil, nil, nil, nil)
			return err
		}},
		{"unknown shape", func() error {
			_, err := product.NewProduct(kernel.NewUUID(), "X", "linen", "plain", product.UnknownShape, nil, nil, nil, nil)
			return err
		}},
		{"non-positive dimension", func() error {
			_, err := product.NewProduct(kernel.NewUUID(), "X", "linen", "plain", product.Rectangular, intPtr(0), nil, nil, nil)
			return err
		}},
		{"unknown edge class", func() error {
			bad := product.UnknownEdgeClass
			_, err := product.NewProduct(kernel.NewUUID(), "X", "linen", "plain", product.Rectangular, nil, nil, nil, &bad)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name+" is rejected", func(t *testing.T) {
			assert.Error(t, tt.build())
		})
	}
}

func TestShapeFromString(t *testing.T) {
	for _, s := range []string{"rectangular", "round", "oval"} {
		shape, err := product.ShapeFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, shape.String())
	}

	_, err := product.ShapeFromString("square")
	assert.Error(t, err)
}

func TestEdgeClassFromString(t *testing.T) {
	for _, class := range product.EdgeClasses() {
		parsed, err := product.EdgeClassFromString(class.String())
		require.NoError(t, err)
		assert.Equal(t, class, parsed)
	}

	_, err := product.EdgeClassFromString("o5")
	assert.Error(t, err, "edge class names are case sensitive")
}

func TestEdgeClassNoIron(t *testing.T) {
	assert.True(t, product.EdgeU3.NoIron())
	assert.True(t, product.EdgeU4.NoIron())
	assert.True(t, product.EdgeU5.NoIron())

	for _, class := range []product.EdgeClass{product.EdgeO1, product.EdgeO3, product.EdgeO5, product.EdgeOGK, product.EdgeLA} {
		assert.False(t, class.NoIron(), class.String())
	}
}
