// Package product contains the product catalog aggregate.
//
// A Product describes one manufacturable item: fabric, pattern, shape,
// nominal dimensions and an optional edge finish. The ledger reads products
// to price actions; it never writes them. Shape and EdgeClass are closed
// enums so an unrecognized value fails at construction time.
package product
