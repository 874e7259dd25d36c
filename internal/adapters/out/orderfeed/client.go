// Package orderfeed implements the OrderFeed port against the external
// order-management system's HTTP API. The client owns authentication and
// the wire format; callers only see the normalized feed shapes.
package orderfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"production/internal/core/ports"
)

var (
	// ErrFeedUnavailable is returned when the order-management system
	// answers with a non-success status.
	ErrFeedUnavailable = errors.New("order feed is unavailable")
)

const defaultTimeout = 30 * time.Second

// Client fetches orders from the external order-management system.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient creates a feed client for the given API base URL and token.
func NewClient(baseURL, apiToken string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL is required")
	}
	if apiToken == "" {
		return nil, errors.New("apiToken is required")
	}

	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		http:     &http.Client{Timeout: defaultTimeout},
	}, nil
}

// orderPayload mirrors the feed's JSON order shape.
type orderPayload struct {
	Ref          int64         `json:"ref"`
	Source       string        `json:"source"`
	ShipmentDate *time.Time    `json:"shipment_date"`
	CustomerName string        `json:"customer_name"`
	Company      string        `json:"company"`
	Lines        []linePayload `json:"lines"`
}

// linePayload mirrors the feed's JSON line shape. Product attributes come
// denormalized on every line.
type linePayload struct {
	SKU       string  `json:"sku"`
	Fabric    string  `json:"fabric"`
	Pattern   string  `json:"pattern"`
	Shape     string  `json:"shape"`
	Width     *int    `json:"width"`
	Height    *int    `json:"height"`
	Diameter  *int    `json:"diameter"`
	EdgeClass *string `json:"edge_class"`
	Quantity  int     `json:"quantity"`
}

// FetchOrders returns orders changed since the given moment. A zero time
// requests the full backlog.
func (c *Client) FetchOrders(ctx context.Context, since time.Time) ([]ports.FeedOrder, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to build feed URL: %w", err)
	}

	if !since.IsZero() {
		q := endpoint.Query()
		q.Set("since", since.UTC().Format(time.RFC3339))
		endpoint.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode)
	}

	var payload []orderPayload
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	orders := make([]ports.FeedOrder, 0, len(payload))
	for _, p := range payload {
		orders = append(orders, toFeedOrder(p))
	}
	return orders, nil
}

func toFeedOrder(p orderPayload) ports.FeedOrder {
	lines := make([]ports.FeedLine, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, ports.FeedLine{
			SKU:       l.SKU,
			Fabric:    l.Fabric,
			Pattern:   l.Pattern,
			Shape:     l.Shape,
			Width:     l.Width,
			Height:    l.Height,
			Diameter:  l.Diameter,
			EdgeClass: l.EdgeClass,
			Quantity:  l.Quantity,
		})
	}

	return ports.FeedOrder{
		ExternalRef:          p.Ref,
		Source:               p.Source,
		ExpectedShipmentDate: p.ShipmentDate,
		CustomerName:         p.CustomerName,
		Company:              p.Company,
		Lines:                lines,
	}
}
