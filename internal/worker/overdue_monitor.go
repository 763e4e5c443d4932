package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

// PickupSource exposes the driver queue to the monitor.
type PickupSource interface {
	PendingPickups(ctx context.Context) ([]model.Order, error)
}

// OverdueGauge receives the latest overdue count.
type OverdueGauge interface {
	SetOverduePickups(n int)
}

// OverdueMonitor periodically reports scheduled orders whose pickup date has
// already passed. It only reads; orders are never transitioned.
type OverdueMonitor struct {
	source  PickupSource
	gauge   OverdueGauge
	spec    string
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time

	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
	mu   sync.Mutex
}

// NewOverdueMonitor constructs the monitor. spec is a standard cron
// expression or descriptor such as "@every 10m".
func NewOverdueMonitor(source PickupSource, gauge OverdueGauge, spec string, timeout time.Duration, logger *slog.Logger) *OverdueMonitor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OverdueMonitor{
		source:  source,
		gauge:   gauge,
		spec:    spec,
		timeout: timeout,
		logger:  logger.With("component", "overdue_monitor"),
		now:     time.Now,
		cron:    cron.New(),
	}
}

// Start schedules the check.
func (m *OverdueMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if _, err := m.cron.AddFunc(m.spec, func() { m.run(runCtx) }); err != nil {
		cancel()
		return err
	}
	m.ctx, m.stop = runCtx, cancel

	m.cron.Start()
	m.logger.Info("overdue monitor started", slog.String("spec", m.spec))
	return nil
}

// Stop cancels running checks and waits for them to return.
func (m *OverdueMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop == nil {
		return
	}
	m.stop()
	m.stop = nil
	<-m.cron.Stop().Done()
	m.logger.Info("overdue monitor stopped")
}

func (m *OverdueMonitor) run(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if _, err := m.Check(checkCtx); err != nil {
		m.logger.Error("overdue check failed", slog.String("error", err.Error()))
	}
}

// Check counts the pending pickups scheduled before today and publishes the result.
func (m *OverdueMonitor) Check(ctx context.Context) (int, error) {
	orders, err := m.source.PendingPickups(ctx)
	if err != nil {
		return 0, err
	}

	now := m.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	overdue := 0
	for _, o := range orders {
		if o.ScheduledDate == nil || !o.ScheduledDate.Before(today) {
			continue
		}
		overdue++
		m.logger.Warn("pickup overdue",
			slog.String("order", o.DisplayNumber()),
			slog.String("status", o.Status.Code()),
			slog.Time("scheduled_date", *o.ScheduledDate),
		)
	}

	m.gauge.SetOverduePickups(overdue)
	return overdue, nil
}
