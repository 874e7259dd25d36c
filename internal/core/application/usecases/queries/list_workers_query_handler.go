package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListWorkersQueryHandler retrieves the worker roster from the database.
type ListWorkersQueryHandler struct {
	db *gorm.DB
}

// NewListWorkersQueryHandler creates a handler for roster queries.
// Requires a GORM database connection for query execution.
func NewListWorkersQueryHandler(db *gorm.DB) ListWorkersQueryHandler {
	return ListWorkersQueryHandler{db: db}
}

// Handle executes the query. Returns every worker ordered by login code.
func (h ListWorkersQueryHandler) Handle(
	ctx context.Context,
	query ListWorkersQuery,
) ([]WorkerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, code, first_name, last_name, role, allowed_stages
		FROM workers
		ORDER BY code
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]WorkerView, 0)
	for rows.Next() {
		view, scanErr := scanWorkerView(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	return views, rows.Err()
}
