package queries

import (
	"context"
	"database/sql"

	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersBoardQueryHandler retrieves the production board from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetOrdersBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersBoardQueryHandler(db *gorm.DB) GetOrdersBoardQueryHandler {
	return GetOrdersBoardQueryHandler{db: db}
}

// Handle executes the query. Orders are sorted by expected shipment date
// with undated orders last, so the board surfaces the most urgent work first.
func (h GetOrdersBoardQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersBoardQuery,
) ([]GetOrdersBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			o.id,
			o.external_ref,
			o.source,
			o.customer_name,
			o.company,
			o.expected_shipment_date,
			o.status,
			(SELECT COUNT(*) FROM lines l WHERE l.order_id = o.id),
			(SELECT COALESCE(SUM(l.required_quantity), 0) FROM lines l WHERE l.order_id = o.id),
			(SELECT COALESCE(SUM(a.quantity), 0)
				FROM actions a
				JOIN lines l ON l.id = a.line_id
				WHERE l.order_id = o.id)
		FROM orders o
	`
	args := make([]any, 0, 1)
	if query.Status() != nil {
		sqlQuery += " WHERE o.status = ?"
		args = append(args, query.Status().String())
	}
	sqlQuery += " ORDER BY o.expected_shipment_date NULLS LAST, o.customer_name"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	board := make([]GetOrdersBoardQueryResponse, 0)

	for rows.Next() {
		var row GetOrdersBoardQueryResponse
		var id uuid.UUID
		var externalRef sql.NullInt64
		var shipmentDate sql.NullTime

		err = rows.Scan(
			&id,
			&externalRef,
			&row.Source,
			&row.CustomerName,
			&row.Company,
			&shipmentDate,
			&row.Status,
			&row.LineCount,
			&row.RequiredTotal,
			&row.RecordedTotal,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if externalRef.Valid {
			row.ExternalRef = &externalRef.Int64
		}
		if shipmentDate.Valid {
			row.ExpectedShipmentDate = &shipmentDate.Time
		}

		board = append(board, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
