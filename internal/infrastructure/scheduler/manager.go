// Package scheduler runs the periodic background jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/reelgate-inc/reelgate/internal/shared/biztime"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

const (
	DefaultNotifierInterval = time.Hour
	checkoutSweepInterval   = 5 * time.Minute
	notifierRunTimeout      = 30 * time.Minute
	checkoutSweepRunTimeout = 5 * time.Minute
)

// SchedulerManager owns the single gocron scheduler of a process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// ========================================
// Expiration Notifier (hourly, start immediately)
// ========================================

// RegisterNotifierJob runs the rental expiration notifier every interval.
// Overlapping runs are rescheduled rather than run concurrently.
func (m *SchedulerManager) RegisterNotifierJob(notifierJob BatchJob, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultNotifierInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), notifierRunTimeout)
			defer cancel()
			m.runBatch(ctx, "expiration notices", notifierJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notifier", "rental"),
		gocron.WithName("expiration-notifier"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered notifier job", "interval", interval.String())
	return nil
}

// ========================================
// Checkout Jobs (5 min interval, start immediately)
// ========================================

// RegisterCheckoutJobs expires pending checkouts that passed their deadline.
func (m *SchedulerManager) RegisterCheckoutJobs(expireCheckoutsJob BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(checkoutSweepInterval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), checkoutSweepRunTimeout)
			defer cancel()
			m.runBatch(ctx, "expired checkouts", expireCheckoutsJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("checkout", "expire"),
		gocron.WithName("checkout-expire"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered checkout jobs", "interval", checkoutSweepInterval.String())
	return nil
}

func (m *SchedulerManager) runBatch(ctx context.Context, name string, job BatchJob) {
	startTime := biztime.NowUTC()

	count, err := job.Execute(ctx)
	if err != nil {
		// A partial run still reports what it processed.
		m.logger.Errorw("scheduled job failed",
			"job", name,
			"processed", count,
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	if count > 0 {
		m.logger.Infow("scheduled job processed items",
			"job", name,
			"count", count,
			"duration", time.Since(startTime),
		)
		return
	}
	m.logger.Debugw("scheduled job found nothing to do", "job", name)
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
