package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"production/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderSyncJob manages the scheduled pull of orders from the external
// order-management system. The first run requests the full backlog; later
// runs only ask for orders changed since the last successful sync.
type OrderSyncJob struct {
	handler  commands.SyncOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger

	mu       sync.Mutex
	lastSync time.Time
}

// NewOrderSyncJob creates a new job for order synchronization. The schedule
// is a six-field cron expression with a seconds column.
func NewOrderSyncJob(
	handler commands.SyncOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OrderSyncJob {
	return &OrderSyncJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "order_sync_job"),
	}
}

// Start begins the order synchronization job on its schedule.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sync job started", "schedule", j.schedule)
	return nil
}

// Stop stops the order synchronization job.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}

func (j *OrderSyncJob) run() {
	ctx := context.Background()

	j.mu.Lock()
	since := j.lastSync
	j.mu.Unlock()

	// The watermark is taken before the pull so orders changed while the
	// sync runs are picked up again next time.
	startedAt := time.Now().UTC()

	cmd := commands.NewSyncOrdersCommand(since)
	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Order sync job failed", "error", err)
		return
	}

	j.mu.Lock()
	j.lastSync = startedAt
	j.mu.Unlock()
}
