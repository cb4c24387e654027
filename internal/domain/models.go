package domain

import (
	"errors"
	"time"
)

// Status is the outcome of one check invocation.
type Status string

const (
	StatusNotified       Status = "notified"
	StatusSuppressed     Status = "suppressed"
	StatusNoAvailability Status = "no_availability"
	StatusError          Status = "error"
)

// Error kinds. Callers wrap these with context and match with errors.Is.
var (
	// ErrUpstream: tours API unreachable or response had an unexpected shape.
	ErrUpstream = errors.New("upstream error")
	// ErrNotification: the communications provider rejected the call/message.
	ErrNotification = errors.New("notification error")
)

// CheckReport is what a single check invocation produced.
type CheckReport struct {
	Status     Status     `json:"status"`
	Message    string     `json:"message,omitempty"`
	ToursFound int        `json:"tours_found"`
	CheckedAt  time.Time  `json:"checked_at"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	Err        error      `json:"-"`
}
