package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestIntervalSchedulerFires(t *testing.T) {
	t.Parallel()

	s := NewInterval(10 * time.Millisecond)
	fired := make(chan time.Time, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx, func(now time.Time) {
		select {
		case fired <- now:
		default:
		}
	}); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer func() { _ = s.Stop(context.Background()) }()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("job never fired")
	}
}

func TestIntervalSchedulerStops(t *testing.T) {
	t.Parallel()

	s := NewInterval(5 * time.Millisecond)
	ticks := make(chan struct{}, 64)

	ctx := context.Background()
	if err := s.Start(ctx, func(time.Time) { ticks <- struct{}{} }); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("job never fired before stop")
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	// Drain anything in flight, then confirm the ticker is silent.
	time.Sleep(20 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	select {
	case <-ticks:
		t.Fatal("job fired after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNilJobIsNoop(t *testing.T) {
	t.Parallel()

	s := NewInterval(time.Millisecond)
	if err := s.Start(context.Background(), nil); err != nil {
		t.Fatalf("Start with nil job: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
