package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakePinger struct{ fail atomic.Bool }

func (f *fakePinger) HealthPing(context.Context) error {
	if f.fail.Load() {
		return errors.New("ping failed")
	}
	return nil
}

type fakeChecker struct{ healthy atomic.Bool }

func (f *fakeChecker) Name() string                         { return "fake" }
func (f *fakeChecker) IsHealthy() bool                      { return f.healthy.Load() }
func (f *fakeChecker) Start(context.Context, time.Duration) {}

func waitTrue(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestPingCheckerTransitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &fakePinger{}
	c := NewPingChecker(zerolog.Nop(), "store", p)
	go c.Start(ctx, 10*time.Millisecond)

	waitTrue(t, c.IsHealthy)

	p.fail.Store(true)
	waitTrue(t, func() bool { return !c.IsHealthy() })

	p.fail.Store(false)
	waitTrue(t, c.IsHealthy)
}

func TestServiceHealthCheckerAggregates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{}
	b := &fakeChecker{}
	a.healthy.Store(true)
	b.healthy.Store(true)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, svc.IsHealthy)

	b.healthy.Store(false)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
}

func TestServiceHealthCheckerStartsUnhealthy(t *testing.T) {
	svc := NewServiceHealthChecker(zerolog.Nop())
	if svc.IsHealthy() {
		t.Fatal("service must report unhealthy before the first evaluation")
	}
}
