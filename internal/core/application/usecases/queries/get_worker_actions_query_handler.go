package queries

import (
	"context"
	"math"

	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWorkerActionsQueryHandler retrieves a worker's action journal from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetWorkerActionsQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkerActionsQueryHandler creates a handler for worker journal queries.
// Requires a GORM database connection for query execution.
func NewGetWorkerActionsQueryHandler(db *gorm.DB) GetWorkerActionsQueryHandler {
	return GetWorkerActionsQueryHandler{db: db}
}

// Handle executes the query. Returns the worker's actions most recent first
// together with the summed snapshot cost over the window.
func (h GetWorkerActionsQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerActionsQuery,
) (GetWorkerActionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkerActionsQueryResponse{}, err
	}

	sql := `
		SELECT
			a.id,
			o.id,
			a.line_id,
			p.sku,
			a.stage,
			a.quantity,
			a.cost,
			a.timestamp
		FROM actions a
		JOIN lines l ON l.id = a.line_id
		JOIN orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE a.actor_id = ? AND a.timestamp >= ?`
	args := []any{query.WorkerID().String(), query.Since()}

	if stage := query.Stage(); stage != nil {
		sql += ` AND a.stage = ?`
		args = append(args, stage.String())
	}
	sql += ` ORDER BY a.timestamp DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return GetWorkerActionsQueryResponse{}, err
	}
	defer rows.Close()

	response := GetWorkerActionsQueryResponse{
		Actions: make([]WorkerActionView, 0),
	}

	for rows.Next() {
		var action WorkerActionView
		var id, orderID, lineID uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&lineID,
			&action.SKU,
			&action.Stage,
			&action.Quantity,
			&action.Cost,
			&action.Timestamp,
		)
		if err != nil {
			return GetWorkerActionsQueryResponse{}, err
		}

		if action.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return GetWorkerActionsQueryResponse{}, err
		}
		if action.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return GetWorkerActionsQueryResponse{}, err
		}
		if action.LineID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return GetWorkerActionsQueryResponse{}, err
		}

		response.TotalCost += action.Cost
		response.Actions = append(response.Actions, action)
	}

	if err = rows.Err(); err != nil {
		return GetWorkerActionsQueryResponse{}, err
	}

	response.TotalCost = math.Round(response.TotalCost*100) / 100
	return response, nil
}
