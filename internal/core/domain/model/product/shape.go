package product

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Shape represents the geometric form of a product.
// It is a closed set: an unrecognized shape fails validation at
// construction time instead of silently passing through.
type Shape int

const (
	// UnknownShape represents an invalid or undefined shape.
	UnknownShape Shape = iota

	// Rectangular products are described by width and height.
	Rectangular

	// Round products are described by a diameter.
	Round

	// Oval products are described by width and height of the bounding box.
	Oval
)

func getShapeStrings() map[Shape]string {
	return map[Shape]string{
		UnknownShape: "unknown",
		Rectangular:  "rectangular",
		Round:        "round",
		Oval:         "oval",
	}
}

func getValidShapeStrings() map[Shape]string {
	//nolint:exhaustive // UnknownShape is intentionally excluded as it's invalid
	return map[Shape]string{
		Rectangular: "rectangular",
		Round:       "round",
		Oval:        "oval",
	}
}

// ShapeFromString parses a shape from its catalog representation.
func ShapeFromString(s string) (Shape, error) {
	for shape, str := range getValidShapeStrings() {
		if str == s {
			return shape, nil
		}
	}
	return UnknownShape, errs.NewValueIsInvalidErrorWithCause("shape is invalid",
		fmt.Errorf("%q is not a valid shape", s))
}

// Validate checks if the Shape value is one of the valid shapes.
func (s Shape) Validate() error {
	if _, ok := getValidShapeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shape is invalid",
			fmt.Errorf("%d is not a valid shape", s))
	}
	return nil
}

// String returns the catalog name of the shape.
func (s Shape) String() string {
	if str, ok := getShapeStrings()[s]; ok {
		return str
	}
	return "unknown"
}
