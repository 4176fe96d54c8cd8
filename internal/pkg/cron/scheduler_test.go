package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSchedulerRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background())

	var runs atomic.Int32
	done := make(chan struct{}, 1)
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	s.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestSchedulerSkipsDisabledJobs(t *testing.T) {
	s := NewScheduler(context.Background())
	s.AddJob("disabled", 0, func(ctx context.Context) error { return nil })
	s.AddJob("enabled", time.Minute, func(ctx context.Context) error { return nil })

	assert.Equal(t, []string{"enabled"}, s.Jobs())
}

func TestRunOnceSurvivesFailuresAndPanics(t *testing.T) {
	s := NewScheduler(context.Background())

	var last atomic.Bool
	s.AddJob("fails", time.Minute, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("panics", time.Minute, func(ctx context.Context) error { panic("bad") })
	s.AddJob("last", time.Minute, func(ctx context.Context) error {
		last.Store(true)
		return nil
	})

	assert.NotPanics(t, func() { s.RunOnce(context.Background()) })
	assert.True(t, last.Load())
}

func TestSchedulerStopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx)
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error { return nil })
	s.Start()

	cancel()
	s.Stop()
}
