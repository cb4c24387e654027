// Package checker holds the poll-and-notify decision: query the upstream,
// compare against the cooldown window, fire the notification, record when
// it went out.
package checker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
	"tournotify/internal/notify"
	"tournotify/internal/repo"
	"tournotify/internal/tours"
)

const callScript = "JPL Educational Group Tour dates are now available. " +
	"Go to the JPL tours page and book immediately. Good luck!"

type Checker struct {
	Logger   *zap.Logger
	Source   tours.Source
	State    repo.StateStore
	Notifier notify.Notifier
	Cooldown time.Duration

	// Now is swappable in tests. Defaults to time.Now.
	Now func() time.Time
}

func New(logger *zap.Logger, src tours.Source, state repo.StateStore, n notify.Notifier, cooldown time.Duration) *Checker {
	return &Checker{
		Logger:   logger,
		Source:   src,
		State:    state,
		Notifier: n,
		Cooldown: cooldown,
		Now:      time.Now,
	}
}

// Run performs one complete check. Never panics and never retries; the
// next scheduled invocation is the retry.
func (c *Checker) Run(ctx context.Context) domain.CheckReport {
	now := c.Now().UTC()

	av, err := c.Source.Check(ctx)
	if err != nil {
		c.Logger.Warn("upstream_check_failed", zap.Error(err))
		return domain.CheckReport{
			Status:    domain.StatusError,
			Message:   err.Error(),
			CheckedAt: now,
			Err:       err,
		}
	}

	c.Logger.Info("upstream_checked",
		zap.Bool("available", av.Available),
		zap.Int("dates", av.Dates),
	)

	if !av.Available {
		return domain.CheckReport{
			Status:    domain.StatusNoAvailability,
			Message:   av.Message,
			CheckedAt: now,
		}
	}

	last, err := c.State.LastNotified(ctx)
	if err != nil {
		// Unreadable state: proceed as if absent. A duplicate call beats
		// a silently missed booking window.
		c.Logger.Warn("state_read_failed", zap.Error(err))
		last = nil
	}

	if last != nil && now.Sub(*last) < c.Cooldown {
		c.Logger.Info("notification_suppressed",
			zap.Time("last_notified_at", *last),
			zap.Duration("cooldown", c.Cooldown),
		)
		return domain.CheckReport{
			Status:     domain.StatusSuppressed,
			Message:    "cooldown active",
			ToursFound: av.Dates,
			CheckedAt:  now,
			NotifiedAt: last,
		}
	}

	// Best-effort send: a provider failure is logged, the check still
	// counts and the timestamp is still recorded.
	notifyErr := c.Notifier.Send(ctx, "JPL tours available", callScript+" "+av.Message)
	if notifyErr != nil {
		c.Logger.Error("notification_failed", zap.Error(notifyErr))
	} else {
		c.Logger.Info("notification_sent", zap.String("message", av.Message))
	}

	if err := c.State.SetLastNotified(ctx, now); err != nil {
		c.Logger.Warn("state_write_failed", zap.Error(err))
	}

	msg := av.Message
	if notifyErr != nil {
		msg = av.Message + " (notification attempt failed)"
	}
	return domain.CheckReport{
		Status:     domain.StatusNotified,
		Message:    msg,
		ToursFound: av.Dates,
		CheckedAt:  now,
		NotifiedAt: &now,
		Err:        notifyErr,
	}
}
