package orderrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres error codes surfaced as contention: a lock wait that exceeded
// lock_timeout and a transaction aborted to break a deadlock. Both leave no
// partial state and are safe to retry.
const (
	pgCodeLockNotAvailable = "55P03"
	pgCodeDeadlockDetected = "40P01"
)

// lockTimeout bounds the wait for a line lock. A submission blocked longer
// than this is reported as contention instead of queueing indefinitely.
const lockTimeout = "3s"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its lines and actions.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order's header columns and derived status. It never
// writes line or action rows: the write scope of every method matches the
// lock scope its callers hold, and Update's callers hold no line lock. Line
// and ledger mutations go through UpdateLine, InsertLine and RemoveLine.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("ExternalRef", "Source", "ExpectedShipmentDate", "CustomerName", "Company", "Status").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateLine saves one line of the aggregate together with the derived
// status: the line row is upserted, its actions are reconciled against the
// aggregate's snapshot, and rows of sibling lines are never touched. The
// caller must hold the FOR UPDATE lock on exactly this line, so a parallel
// writer on another line of the same order can never be clobbered.
func (r *GormOrderRepository) UpdateLine(
	ctx context.Context,
	aggregate *order.Order,
	lineID kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := lineID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	line, ok := findLineDTO(dto, lineID)
	if !ok {
		return errs.NewObjectNotFoundError("line", lineID.String())
	}

	db := r.db.WithContext(ctx)
	if err := r.updateStatus(db, dto); err != nil {
		return err
	}

	actions := line.Actions
	actionIDs := make([]uuid.UUID, 0, len(actions))
	for _, a := range actions {
		actionIDs = append(actionIDs, a.ID)
	}
	// Actions are reconciled separately; the line upsert must not cascade
	// into them.
	line.Actions = nil

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&line).Error; err != nil {
		return err
	}

	if len(actions) > 0 {
		err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&actions).Error
		if err != nil {
			return err
		}
	}

	removedActions := db.Where("line_id = ?", line.ID)
	if len(actionIDs) > 0 {
		removedActions = removedActions.Where("id NOT IN ?", actionIDs)
	}
	if err := removedActions.Delete(&ActionDTO{}).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// InsertLine saves a line just added to the aggregate together with the
// derived status. The insert is strict: a colliding line id is an error,
// never an overwrite of existing rows.
func (r *GormOrderRepository) InsertLine(
	ctx context.Context,
	aggregate *order.Order,
	lineID kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := lineID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	line, ok := findLineDTO(dto, lineID)
	if !ok {
		return errs.NewObjectNotFoundError("line", lineID.String())
	}

	db := r.db.WithContext(ctx)
	if err := r.updateStatus(db, dto); err != nil {
		return err
	}

	if err := db.Create(&line).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// RemoveLine deletes the line row the aggregate no longer carries, together
// with the derived status. The line's actions go with it through the
// foreign-key cascade. The caller must hold the FOR UPDATE lock on the line
// being removed.
func (r *GormOrderRepository) RemoveLine(
	ctx context.Context,
	aggregate *order.Order,
	lineID kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := lineID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := r.updateStatus(db, dto); err != nil {
		return err
	}

	result := db.Where("id = ? AND order_id = ?", lineID.Bytes(), dto.ID).Delete(&LineDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("line", lineID.String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) updateStatus(db *gorm.DB, dto OrderDTO) error {
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("Status").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func findLineDTO(dto OrderDTO, lineID kernel.UUID) (LineDTO, bool) {
	id := lineID.Bytes()
	for _, line := range dto.Lines {
		if line.ID == id {
			return line, true
		}
	}
	return LineDTO{}, false
}

// Get retrieves an order aggregate by ID with its lines and actions.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines.Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp")
		}).
		Preload("Lines").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByExternalRef retrieves the order synced under the given external
// reference.
func (r *GormOrderRepository) GetByExternalRef(ctx context.Context, externalRef int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines.Actions", func(db *gorm.DB) *gorm.DB {
			return db.Order("timestamp")
		}).
		Preload("Lines").
		First(&dto, "external_ref = ?", externalRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", externalRef)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByLineID retrieves the order owning the given line, without locking.
func (r *GormOrderRepository) GetByLineID(ctx context.Context, lineID kernel.UUID) (*order.Order, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	var line LineDTO
	err := r.db.WithContext(ctx).First(&line, "id = ?", lineID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("line", lineID.String())
		}
		return nil, err
	}

	return r.getByRawID(ctx, line.OrderID)
}

// GetByLineIDForUpdate locks the line row exclusively with a bounded wait,
// then retrieves the owning order aggregate. The lock is held until the
// surrounding transaction commits or rolls back. A lock wait that exceeds
// the bound surfaces as a Contention error.
func (r *GormOrderRepository) GetByLineIDForUpdate(ctx context.Context, lineID kernel.UUID) (*order.Order, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	if err := db.Exec("SET LOCAL lock_timeout = '" + lockTimeout + "'").Error; err != nil {
		return nil, err
	}

	var line LineDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&line, "id = ?", lineID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("line", lineID.String())
		}
		if contentionErr := asContention(err, "line "+lineID.String()); contentionErr != nil {
			return nil, contentionErr
		}
		return nil, err
	}

	return r.getByRawID(ctx, line.OrderID)
}

// GetByActionIDForUpdate resolves the action's line, then delegates to
// GetByLineIDForUpdate. The action row itself is not locked; the line lock
// serializes every mutation of the ledger it belongs to.
func (r *GormOrderRepository) GetByActionIDForUpdate(ctx context.Context, actionID kernel.UUID) (*order.Order, error) {
	if err := actionID.Validate(); err != nil {
		return nil, err
	}

	var action ActionDTO
	err := r.db.WithContext(ctx).First(&action, "id = ?", actionID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("action", actionID.String())
		}
		return nil, err
	}

	lineID, err := kernel.UUIDFromBytes(action.LineID[:])
	if err != nil {
		return nil, err
	}

	return r.GetByLineIDForUpdate(ctx, lineID)
}

func (r *GormOrderRepository) getByRawID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, orderID)
}

// asContention maps Postgres lock-wait failures to the retryable
// Contention error; any other error returns nil.
func asContention(err error, resource string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	if pgErr.Code == pgCodeLockNotAvailable || pgErr.Code == pgCodeDeadlockDetected {
		return errs.NewContentionError(resource, err)
	}
	return nil
}
