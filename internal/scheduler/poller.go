package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
)

// Runner matches checker.Checker; declared here so tests can stub it.
type Runner interface {
	Run(ctx context.Context) domain.CheckReport
}

// Poller triggers checks from inside the process for deployments without
// an external scheduler. Interval 0 disables it.
type Poller struct {
	Logger   *zap.Logger
	Checks   Runner
	Interval time.Duration
}

func NewPoller(logger *zap.Logger, checks Runner, interval time.Duration) *Poller {
	if interval < 0 {
		interval = 0
	}
	return &Poller{Logger: logger, Checks: checks, Interval: interval}
}

// Run does an immediate pass, then one per tick. Stops when ctx is
// cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.Interval == 0 {
		p.Logger.Info("poller_disabled")
		return
	}
	t := time.NewTicker(p.Interval)
	defer t.Stop()

	p.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("poller_stopped")
			return
		case <-t.C:
			p.runOnce(ctx)
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	rep := p.Checks.Run(ctx)
	p.Logger.Debug("poller_checked",
		zap.String("status", string(rep.Status)),
		zap.Int("tours_found", rep.ToursFound),
	)
}
