package http

import (
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/costing"
	"production/internal/core/domain/model/product"
)

// apiError is the uniform error body returned by every endpoint.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// actionResult is the response body for submit and amend operations: the
// recorded action with its snapshot cost and the order status it produced.
type actionResult struct {
	ID          string    `json:"id"`
	LineID      string    `json:"line_id"`
	OrderID     string    `json:"order_id"`
	Stage       string    `json:"stage"`
	Quantity    int       `json:"quantity"`
	Cost        float64   `json:"cost"`
	ActorID     string    `json:"actor_id"`
	ActorName   string    `json:"actor_name"`
	Timestamp   time.Time `json:"timestamp"`
	OrderStatus string    `json:"order_status"`
}

func actionResultPayload(r commands.ActionResult) actionResult {
	return actionResult{
		ID:          r.ID.String(),
		LineID:      r.LineID.String(),
		OrderID:     r.OrderID.String(),
		Stage:       r.Stage.String(),
		Quantity:    r.Quantity,
		Cost:        r.Cost,
		ActorID:     r.ActorID.String(),
		ActorName:   r.ActorName,
		Timestamp:   r.Timestamp,
		OrderStatus: r.OrderStatus.String(),
	}
}

type actionView struct {
	ID        string    `json:"id"`
	Stage     string    `json:"stage"`
	Quantity  int       `json:"quantity"`
	Cost      float64   `json:"cost"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Timestamp time.Time `json:"timestamp"`
}

type lineView struct {
	LineID           string         `json:"line_id"`
	OrderID          string         `json:"order_id"`
	OrderStatus      string         `json:"order_status"`
	SKU              string         `json:"sku"`
	Fabric           string         `json:"fabric"`
	Pattern          string         `json:"pattern"`
	RequiredQuantity int            `json:"required_quantity"`
	StageTotals      map[string]int `json:"stage_totals"`
	Actions          []actionView   `json:"actions"`
}

type boardRow struct {
	ID                   string     `json:"id"`
	ExternalRef          *int64     `json:"external_ref"`
	Source               string     `json:"source"`
	CustomerName         string     `json:"customer_name"`
	Company              string     `json:"company"`
	ExpectedShipmentDate *time.Time `json:"expected_shipment_date"`
	Status               string     `json:"status"`
	LineCount            int        `json:"line_count"`
	RequiredTotal        int        `json:"required_total"`
	RecordedTotal        int        `json:"recorded_total"`
}

type journalEntry struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	LineID    string    `json:"line_id"`
	SKU       string    `json:"sku"`
	Stage     string    `json:"stage"`
	Quantity  int       `json:"quantity"`
	Cost      float64   `json:"cost"`
	Timestamp time.Time `json:"timestamp"`
}

type journalView struct {
	Actions   []journalEntry `json:"actions"`
	TotalCost float64        `json:"total_cost"`
}

// costConfigPayload is the wire shape of the cost-model factors.
// Per-edge-class maps are keyed by the edge class wire name ("U3", "O5", ...).
type costConfigPayload struct {
	LagFactor           float64            `json:"lag_factor"`
	CuttingFactor       float64            `json:"cutting_factor"`
	IroningFactor       float64            `json:"ironing_factor"`
	PrepackingFactor    float64            `json:"prepacking_factor"`
	PackingFactor       float64            `json:"packing_factor"`
	CornerSewingFactors map[string]float64 `json:"corner_sewing_factors"`
	SewingFactors       map[string]float64 `json:"sewing_factors"`
	MaterialWasteCm     map[string]int     `json:"material_waste_cm"`
	ActorID             string             `json:"actor_id"`
}

func (p costConfigPayload) toConfig() (costing.Config, error) {
	cornerSewing, err := edgeClassFloatMap(p.CornerSewingFactors)
	if err != nil {
		return costing.Config{}, err
	}
	sewing, err := edgeClassFloatMap(p.SewingFactors)
	if err != nil {
		return costing.Config{}, err
	}

	waste := make(map[product.EdgeClass]int, len(p.MaterialWasteCm))
	for name, w := range p.MaterialWasteCm {
		class, classErr := product.EdgeClassFromString(name)
		if classErr != nil {
			return costing.Config{}, classErr
		}
		waste[class] = w
	}

	return costing.NewConfig(
		p.LagFactor, p.CuttingFactor, p.IroningFactor,
		p.PrepackingFactor, p.PackingFactor,
		cornerSewing, sewing, waste)
}

func edgeClassFloatMap(in map[string]float64) (map[product.EdgeClass]float64, error) {
	out := make(map[product.EdgeClass]float64, len(in))
	for name, f := range in {
		class, err := product.EdgeClassFromString(name)
		if err != nil {
			return nil, err
		}
		out[class] = f
	}
	return out, nil
}

// costConfigView is the read-side wire shape of the cost-model factors.
type costConfigView struct {
	LagFactor           float64            `json:"lag_factor"`
	CuttingFactor       float64            `json:"cutting_factor"`
	IroningFactor       float64            `json:"ironing_factor"`
	PrepackingFactor    float64            `json:"prepacking_factor"`
	PackingFactor       float64            `json:"packing_factor"`
	CornerSewingFactors map[string]float64 `json:"corner_sewing_factors"`
	SewingFactors       map[string]float64 `json:"sewing_factors"`
	MaterialWasteCm     map[string]int     `json:"material_waste_cm"`
}

func costConfigViewPayload(cfg costing.Config) costConfigView {
	return costConfigView{
		LagFactor:           cfg.LagFactor(),
		CuttingFactor:       cfg.CuttingFactor(),
		IroningFactor:       cfg.IroningFactor(),
		PrepackingFactor:    cfg.PrepackingFactor(),
		PackingFactor:       cfg.PackingFactor(),
		CornerSewingFactors: edgeClassNameFloatMap(cfg.CornerSewingFactors()),
		SewingFactors:       edgeClassNameFloatMap(cfg.SewingFactors()),
		MaterialWasteCm:     edgeClassNameIntMap(cfg.MaterialWasteCms()),
	}
}

func edgeClassNameFloatMap(in map[product.EdgeClass]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for class, f := range in {
		out[class.String()] = f
	}
	return out
}

func edgeClassNameIntMap(in map[product.EdgeClass]int) map[string]int {
	out := make(map[string]int, len(in))
	for class, w := range in {
		out[class.String()] = w
	}
	return out
}

type workerView struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Role          string   `json:"role"`
	AllowedStages []string `json:"allowed_stages"`
}

func workerViewPayload(v queries.WorkerView) workerView {
	return workerView{
		ID:            v.ID.String(),
		Code:          v.Code,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		Role:          v.Role,
		AllowedStages: v.AllowedStages,
	}
}
