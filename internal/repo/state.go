package repo

import (
	"context"
	"time"
)

// StateStore holds the single piece of state this service keeps: when the
// last notification went out. nil means no notification has been sent yet
// (or the record was lost on restart, which the design accepts for the
// in-memory adapter).
type StateStore interface {
	LastNotified(ctx context.Context) (*time.Time, error)
	SetLastNotified(ctx context.Context, at time.Time) error
}
