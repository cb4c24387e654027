package notify

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"tournotify/internal/domain"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans a message out to every configured channel. All channels are
// attempted; errors are collected rather than short-circuiting. Sending
// with no channels is a failure, not a vacuous success, so a connectivity
// test against an unconfigured deployment reports the truth.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	sent := false
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		sent = true
		errs = multierr.Append(errs, n.Send(ctx, title, text))
	}
	if !sent {
		return fmt.Errorf("%w: no channels configured", domain.ErrNotification)
	}
	return errs
}
