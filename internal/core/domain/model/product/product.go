package product

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")
)

// Product represents one catalog entry: a fabric/pattern/shape combination
// with nominal dimensions and an optional edge finish. Products are created
// by the catalog collaborator (or the order feed) and are a read-only input
// to the cost model; the ledger never mutates them.
//
// Dimensions are stored in centimeters. Width/height apply to rectangular
// and oval shapes, diameter to round ones. Any of them may be absent for
// feed-imported products whose SKU did not parse cleanly; cost calculation
// falls back to defaults rather than failing, since cost is advisory.
type Product struct {
	id        kernel.UUID
	sku       string
	fabric    string
	pattern   string
	shape     Shape
	width     *int
	height    *int
	diameter  *int
	edgeClass *EdgeClass

	isConstructed bool
}

// NewProduct creates a new Product with validation.
func NewProduct(
	id kernel.UUID,
	sku string,
	fabric string,
	pattern string,
	shape Shape,
	width, height, diameter *int,
	edgeClass *EdgeClass,
) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSKU(sku),
		p.setFabric(fabric),
		p.setPattern(pattern),
		p.setShape(shape),
		p.setDimensions(width, height, diameter),
		p.setEdgeClass(edgeClass),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(
	id kernel.UUID,
	sku string,
	fabric string,
	pattern string,
	shape Shape,
	width, height, diameter *int,
	edgeClass *EdgeClass,
) (*Product, error) {
	return NewProduct(id, sku, fabric, pattern, shape, width, height, diameter, edgeClass)
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// SKU returns the product's stock keeping unit.
func (p *Product) SKU() string {
	return p.sku
}

// Fabric returns the fabric name.
func (p *Product) Fabric() string {
	return p.fabric
}

// Pattern returns the pattern name.
func (p *Product) Pattern() string {
	return p.pattern
}

// Shape returns the product's shape.
func (p *Product) Shape() Shape {
	return p.shape
}

// Width returns the nominal width in centimeters, nil when unknown.
func (p *Product) Width() *int {
	return p.width
}

// Height returns the nominal height in centimeters, nil when unknown.
func (p *Product) Height() *int {
	return p.height
}

// Diameter returns the nominal diameter in centimeters, nil when unknown.
func (p *Product) Diameter() *int {
	return p.diameter
}

// EdgeClass returns the edge finish, nil when the product has none recorded.
func (p *Product) EdgeClass() *EdgeClass {
	return p.edgeClass
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.sku = sku
	return nil
}

func (p *Product) setFabric(fabric string) error {
	if fabric == "" {
		return errs.NewValueIsRequiredError("fabric")
	}
	p.fabric = fabric
	return nil
}

func (p *Product) setPattern(pattern string) error {
	if pattern == "" {
		return errs.NewValueIsRequiredError("pattern")
	}
	p.pattern = pattern
	return nil
}

func (p *Product) setShape(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	p.shape = shape
	return nil
}

func (p *Product) setDimensions(width, height, diameter *int) error {
	for name, dim := range map[string]*int{"width": width, "height": height, "diameter": diameter} {
		if dim != nil && *dim <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(name+" is invalid",
				fmt.Errorf("%d is not greater than 0", *dim))
		}
	}
	p.width = width
	p.height = height
	p.diameter = diameter
	return nil
}

func (p *Product) setEdgeClass(edgeClass *EdgeClass) error {
	if edgeClass != nil {
		if err := edgeClass.Validate(); err != nil {
			return err
		}
	}
	p.edgeClass = edgeClass
	return nil
}
