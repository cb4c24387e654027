package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
)

type countingRunner struct{ runs atomic.Int64 }

func (c *countingRunner) Run(ctx context.Context) domain.CheckReport {
	c.runs.Add(1)
	return domain.CheckReport{Status: domain.StatusNoAvailability}
}

func TestPoller_DisabledWithZeroInterval(t *testing.T) {
	r := &countingRunner{}
	p := NewPoller(zap.NewNop(), r, 0)

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled poller should return immediately")
	}
	if r.runs.Load() != 0 {
		t.Fatalf("disabled poller ran %d checks", r.runs.Load())
	}
}

func TestPoller_RunsImmediatelyAndOnTicks(t *testing.T) {
	r := &countingRunner{}
	p := NewPoller(zap.NewNop(), r, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	// Immediate pass plus at least one tick within the window.
	deadline := time.After(time.Second)
	for r.runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected >=2 runs, got %d", r.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}
}
