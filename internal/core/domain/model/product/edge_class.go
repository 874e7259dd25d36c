package product

import (
	"fmt"

	"production/internal/pkg/errs"
)

// EdgeClass represents the finish applied to a product's edges. The class
// drives the cost model: sewing factors, material-waste allowance and the
// no-iron designation are all keyed by it.
//
// The set is closed. An unrecognized class is a construction-time error,
// never a silent fallback.
type EdgeClass int

const (
	// UnknownEdgeClass represents an invalid or undefined edge class.
	UnknownEdgeClass EdgeClass = iota

	EdgeU3
	EdgeU4
	EdgeU5
	EdgeO1
	EdgeO3
	EdgeO5
	EdgeOGK
	EdgeLA
)

func getEdgeClassStrings() map[EdgeClass]string {
	return map[EdgeClass]string{
		UnknownEdgeClass: "unknown",
		EdgeU3:           "U3",
		EdgeU4:           "U4",
		EdgeU5:           "U5",
		EdgeO1:           "O1",
		EdgeO3:           "O3",
		EdgeO5:           "O5",
		EdgeOGK:          "OGK",
		EdgeLA:           "LA",
	}
}

func getValidEdgeClassStrings() map[EdgeClass]string {
	//nolint:exhaustive // UnknownEdgeClass is intentionally excluded as it's invalid
	return map[EdgeClass]string{
		EdgeU3:  "U3",
		EdgeU4:  "U4",
		EdgeU5:  "U5",
		EdgeO1:  "O1",
		EdgeO3:  "O3",
		EdgeO5:  "O5",
		EdgeOGK: "OGK",
		EdgeLA:  "LA",
	}
}

// EdgeClasses returns all valid edge classes.
func EdgeClasses() []EdgeClass {
	return []EdgeClass{EdgeU3, EdgeU4, EdgeU5, EdgeO1, EdgeO3, EdgeO5, EdgeOGK, EdgeLA}
}

// EdgeClassFromString parses an edge class from its catalog representation.
func EdgeClassFromString(s string) (EdgeClass, error) {
	for class, str := range getValidEdgeClassStrings() {
		if str == s {
			return class, nil
		}
	}
	return UnknownEdgeClass, errs.NewValueIsInvalidErrorWithCause("edge class is invalid",
		fmt.Errorf("%q is not a valid edge class", s))
}

// Validate checks if the EdgeClass value is one of the valid classes.
func (c EdgeClass) Validate() error {
	if _, ok := getValidEdgeClassStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("edge class is invalid",
			fmt.Errorf("%d is not a valid edge class", c))
	}
	return nil
}

// String returns the catalog name of the edge class.
func (c EdgeClass) String() string {
	if str, ok := getEdgeClassStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// NoIron reports whether products with this edge class skip the ironing
// stage cost. The U-series finishes are pressed during sewing and carry
// no separate ironing cost.
func (c EdgeClass) NoIron() bool {
	return c == EdgeU3 || c == EdgeU4 || c == EdgeU5
}
