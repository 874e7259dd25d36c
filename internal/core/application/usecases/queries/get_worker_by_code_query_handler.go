package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWorkerByCodeQueryHandler resolves login codes against the worker
// roster. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetWorkerByCodeQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkerByCodeQueryHandler creates a handler for login-code lookups.
// Requires a GORM database connection for query execution.
func NewGetWorkerByCodeQueryHandler(db *gorm.DB) GetWorkerByCodeQueryHandler {
	return GetWorkerByCodeQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFound error when no worker
// carries the code.
func (h GetWorkerByCodeQueryHandler) Handle(
	ctx context.Context,
	query GetWorkerByCodeQuery,
) (WorkerView, error) {
	if err := query.Validate(); err != nil {
		return WorkerView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, code, first_name, last_name, role, allowed_stages
		FROM workers
		WHERE code = ?
	`, query.Code()).Row()

	view, err := scanWorkerView(row.Scan)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
		return WorkerView{}, errs.NewObjectNotFoundError("code", query.Code())
	}
	if err != nil {
		return WorkerView{}, err
	}

	return view, nil
}

// scanWorkerView maps one workers row into the read model, decoding the
// JSONB stage array. A SQL NULL array means no stage restriction.
func scanWorkerView(scan func(dest ...any) error) (WorkerView, error) {
	var view WorkerView
	var id uuid.UUID
	var stagesRaw []byte

	err := scan(&id, &view.Code, &view.FirstName, &view.LastName, &view.Role, &stagesRaw)
	if err != nil {
		return WorkerView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return WorkerView{}, err
	}

	view.AllowedStages = make([]string, 0)
	if len(stagesRaw) > 0 {
		var stages []string
		if err = json.Unmarshal(stagesRaw, &stages); err != nil {
			return WorkerView{}, err
		}
		view.AllowedStages = append(view.AllowedStages, stages...)
	}

	return view, nil
}
