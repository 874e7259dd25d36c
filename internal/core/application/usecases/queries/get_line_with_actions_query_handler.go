package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLineWithActionsQueryHandler retrieves the line read model from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetLineWithActionsQueryHandler struct {
	db *gorm.DB
}

// NewGetLineWithActionsQueryHandler creates a handler for line detail queries.
// Requires a GORM database connection for query execution.
func NewGetLineWithActionsQueryHandler(db *gorm.DB) GetLineWithActionsQueryHandler {
	return GetLineWithActionsQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFound error when the line
// does not exist. The per-stage totals always carry all four stages, with
// zero for stages that have no recorded work.
func (h GetLineWithActionsQueryHandler) Handle(
	ctx context.Context,
	query GetLineWithActionsQuery,
) (GetLineWithActionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetLineWithActionsQueryResponse{}, err
	}

	response, err := h.loadLine(ctx, query.LineID())
	if err != nil {
		return GetLineWithActionsQueryResponse{}, err
	}

	if err = h.loadActions(ctx, &response); err != nil {
		return GetLineWithActionsQueryResponse{}, err
	}

	return response, nil
}

func (h GetLineWithActionsQueryHandler) loadLine(
	ctx context.Context,
	lineID kernel.UUID,
) (GetLineWithActionsQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.order_id,
			o.status,
			p.sku,
			p.fabric,
			p.pattern,
			l.required_quantity
		FROM lines l
		JOIN orders o ON o.id = l.order_id
		JOIN products p ON p.id = l.product_id
		WHERE l.id = ?
	`, lineID.String()).Row()

	var response GetLineWithActionsQueryResponse
	var id, orderID uuid.UUID

	err := row.Scan(
		&id,
		&orderID,
		&response.OrderStatus,
		&response.SKU,
		&response.Fabric,
		&response.Pattern,
		&response.RequiredQuantity,
	)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return GetLineWithActionsQueryResponse{}, errs.NewObjectNotFoundError("line", lineID.String())
	}
	if err != nil {
		return GetLineWithActionsQueryResponse{}, err
	}

	if response.LineID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetLineWithActionsQueryResponse{}, err
	}
	if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetLineWithActionsQueryResponse{}, err
	}

	response.StageTotals = make(map[string]int, len(order.Stages()))
	for _, stage := range order.Stages() {
		response.StageTotals[stage.String()] = 0
	}
	response.Actions = make([]ActionView, 0)
	return response, nil
}

func (h GetLineWithActionsQueryHandler) loadActions(
	ctx context.Context,
	response *GetLineWithActionsQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.stage,
			a.quantity,
			a.cost,
			a.actor_id,
			w.first_name || ' ' || w.last_name,
			a.timestamp
		FROM actions a
		JOIN workers w ON w.id = a.actor_id
		WHERE a.line_id = ?
		ORDER BY a.timestamp
	`, response.LineID.String()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var action ActionView
		var id, actorID uuid.UUID

		err = rows.Scan(
			&id,
			&action.Stage,
			&action.Quantity,
			&action.Cost,
			&actorID,
			&action.ActorName,
			&action.Timestamp,
		)
		if err != nil {
			return err
		}

		if action.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return err
		}
		if action.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return err
		}

		response.StageTotals[action.Stage] += action.Quantity
		response.Actions = append(response.Actions, action)
	}

	return rows.Err()
}
