package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/logger"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_DeliversToAllSinks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var first, second []domain.SystemSnapshot

	sample := func(context.Context) domain.SystemSnapshot {
		return domain.SystemSnapshot{CollectedAt: time.Now()}
	}
	sinkA := func(_ context.Context, s domain.SystemSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		if len(first) < 3 {
			first = append(first, s)
		}
		if len(first) == 3 {
			cancel()
		}
	}
	sinkB := func(_ context.Context, s domain.SystemSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		if len(second) < 3 {
			second = append(second, s)
		}
	}

	s := NewScheduler(10*time.Millisecond, logger.Discard(), sample, sinkA, sinkB)

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func TestScheduler_SamplesImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan struct{}, 1)
	s := NewScheduler(time.Hour, logger.Discard(),
		func(context.Context) domain.SystemSnapshot { return domain.SystemSnapshot{} },
		func(context.Context, domain.SystemSnapshot) {
			select {
			case got <- struct{}{}:
			default:
			}
		},
	)

	go s.Start(ctx)

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("no sample before first tick")
	}
}

func TestScheduler_SinkContextOutlivesSlowSample(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := 100 * time.Millisecond
	sinkErr := make(chan error, 1)

	sample := func(sampleCtx context.Context) domain.SystemSnapshot {
		select {
		case <-time.After(interval + 20*time.Millisecond):
		case <-sampleCtx.Done():
		}
		return domain.SystemSnapshot{}
	}
	sink := func(sinkCtx context.Context, _ domain.SystemSnapshot) {
		select {
		case sinkErr <- sinkCtx.Err():
		default:
		}
	}

	go NewScheduler(interval, logger.Discard(), sample, sink).Start(ctx)

	select {
	case err := <-sinkErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sink was not called")
	}
}
