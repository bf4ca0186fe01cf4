package jobs

import (
	"context"
	"sync"
	"time"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/logger"
	"workshop/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOverdueScanSchedule runs the scan every five minutes.
const DefaultOverdueScanSchedule = "0 */5 * * * *"

const scanTimeout = 30 * time.Second

// TodayMetricsReader is the read model the scan polls.
type TodayMetricsReader interface {
	Handle(ctx context.Context, query queries.GetTodayMetricsQuery) (services.TodayMetrics, error)
}

// OverdueScanJob refreshes the overdue gauge from the ledger on a schedule and
// logs when the number of overdue orders changes.
type OverdueScanJob struct {
	reader   TodayMetricsReader
	schedule string
	report   func(int)
	cron     *cron.Cron
	logger   *zap.SugaredLogger

	mu   sync.Mutex
	last int
}

// NewOverdueScanJob uses a six-field cron schedule; a blank schedule means
// DefaultOverdueScanSchedule. report receives each count; nil publishes it to
// the overdue gauge.
func NewOverdueScanJob(reader TodayMetricsReader, schedule string, report func(int)) *OverdueScanJob {
	if schedule == "" {
		schedule = DefaultOverdueScanSchedule
	}
	if report == nil {
		report = metrics.SetOverdue
	}
	return &OverdueScanJob{
		reader:   reader,
		schedule: schedule,
		report:   report,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.Named("overdue_scan_job"),
		last:     -1,
	}
}

// Start runs one scan immediately and then follows the schedule.
func (j *OverdueScanJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()
		_ = j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()
	_ = j.RunOnce(ctx)

	j.cron.Start()
	j.logger.Infow("overdue scan job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single scan.
func (j *OverdueScanJob) RunOnce(ctx context.Context) error {
	m, err := j.reader.Handle(ctx, queries.NewGetTodayMetricsQuery())
	if err != nil {
		j.logger.Errorw("overdue scan failed", "error", err)
		return err
	}

	j.report(m.OverdueOrders)

	j.mu.Lock()
	changed := m.OverdueOrders != j.last
	j.last = m.OverdueOrders
	j.mu.Unlock()

	if changed {
		j.logger.Infow("overdue orders changed", "overdue", m.OverdueOrders, "pending", m.PendingDeliveries)
	}
	return nil
}

// Stop waits for a running scan to finish.
func (j *OverdueScanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Infow("overdue scan job stopped")
}
