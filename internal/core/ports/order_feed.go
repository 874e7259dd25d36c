package ports

import (
	"context"
	"time"
)

// FeedLine is one order position as reported by the external
// order-management system. Product attributes arrive denormalized; the
// sync command upserts the catalog from them.
type FeedLine struct {
	SKU       string
	Fabric    string
	Pattern   string
	Shape     string
	Width     *int
	Height    *int
	Diameter  *int
	EdgeClass *string
	Quantity  int
}

// FeedOrder is one order as reported by the external order-management
// system, keyed by its reference in that system.
type FeedOrder struct {
	ExternalRef          int64
	Source               string
	ExpectedShipmentDate *time.Time
	CustomerName         string
	Company              string
	Lines                []FeedLine
}

// OrderFeed pulls new and updated orders from the external
// order-management system. Implementations own authentication and wire
// format; the sync command only sees the normalized feed shapes.
type OrderFeed interface {
	// FetchOrders returns orders changed since the given moment. A zero
	// time requests the full backlog.
	FetchOrders(ctx context.Context, since time.Time) ([]FeedOrder, error)
}
