// Package productrepo persists the product catalog. Products are written by
// the feed sync and read by the cost model, so the repository surface is a
// small upsert-and-lookup set rather than a full CRUD.
package productrepo

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
// The SKU carries a unique index so feed synchronization can upsert
// products idempotently.
type ProductDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU       string    `gorm:"uniqueIndex"`
	Fabric    string
	Pattern   string
	Shape     string
	Width     *int
	Height    *int
	Diameter  *int
	EdgeClass *string
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain entity to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	var edgeClass *string
	if ec := aggregate.EdgeClass(); ec != nil {
		s := ec.String()
		edgeClass = &s
	}

	return ProductDTO{
		ID:        aggregate.ID().Bytes(),
		SKU:       aggregate.SKU(),
		Fabric:    aggregate.Fabric(),
		Pattern:   aggregate.Pattern(),
		Shape:     aggregate.Shape().String(),
		Width:     aggregate.Width(),
		Height:    aggregate.Height(),
		Diameter:  aggregate.Diameter(),
		EdgeClass: edgeClass,
	}
}

// toDomain converts a database DTO to a product domain entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shape, err := product.ShapeFromString(dto.Shape)
	if err != nil {
		return nil, err
	}

	var edgeClass *product.EdgeClass
	if dto.EdgeClass != nil {
		ec, ecErr := product.EdgeClassFromString(*dto.EdgeClass)
		if ecErr != nil {
			return nil, ecErr
		}
		edgeClass = &ec
	}

	return product.RestoreProduct(
		id, dto.SKU, dto.Fabric, dto.Pattern, shape,
		dto.Width, dto.Height, dto.Diameter, edgeClass)
}
