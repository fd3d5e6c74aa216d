package elevclock

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
)

func TestNewClockInvalidFactor(t *testing.T) {
	factors := []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, factor := range factors {
		clock, err := NewClock(factor)
		if !errors.Is(err, elevconsts.ErrInvalidParameter) {
			t.Errorf("NewClock(%v) error = %v, expected %v", factor, err, elevconsts.ErrInvalidParameter)
		}
		if clock != nil {
			t.Errorf("NewClock(%v) = %v, expected nil", factor, clock)
		}
	}
}

func TestConversionsSaturate(t *testing.T) {
	slow, err := NewClock(1e-10)
	if err != nil {
		t.Fatalf("NewClock(1e-10) error = %v", err)
	}
	if got := slow.ToRealDuration(2 * time.Second); got != math.MaxInt64 {
		t.Errorf("ToRealDuration(2s) at factor 1e-10 = %v, expected %v", got, time.Duration(math.MaxInt64))
	}
	if got := slow.ToRealDuration(-2 * time.Second); got != math.MinInt64 {
		t.Errorf("ToRealDuration(-2s) at factor 1e-10 = %v, expected %v", got, time.Duration(math.MinInt64))
	}

	fast, err := NewClock(1e10)
	if err != nil {
		t.Fatalf("NewClock(1e10) error = %v", err)
	}
	if got := fast.ToSimulatedDuration(time.Hour); got != math.MaxInt64 {
		t.Errorf("ToSimulatedDuration(1h) at factor 1e10 = %v, expected %v", got, time.Duration(math.MaxInt64))
	}

	// An overflowing sleep must block until cancelled rather than return at once.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := slow.Sleep(ctx, 2*time.Second); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Sleep(2s) at factor 1e-10 error = %v, expected %v", err, context.DeadlineExceeded)
	}
}

func TestConversions(t *testing.T) {
	clock, err := NewClock(50)
	if err != nil {
		t.Fatalf("NewClock(50) error = %v", err)
	}

	if got := clock.ToRealDuration(10 * time.Second); got != 200*time.Millisecond {
		t.Errorf("ToRealDuration(10s) = %v, expected 200ms", got)
	}
	if got := clock.ToSimulatedDuration(200 * time.Millisecond); got != 10*time.Second {
		t.Errorf("ToSimulatedDuration(200ms) = %v, expected 10s", got)
	}

	slow, _ := NewClock(0.5)
	if got := slow.ToRealDuration(time.Second); got != 2*time.Second {
		t.Errorf("ToRealDuration(1s) with factor 0.5 = %v, expected 2s", got)
	}
}

func TestRoundTrip(t *testing.T) {
	factors := []float64{0.25, 1, 3, 7.5, 50, 1000}
	durations := []time.Duration{0, time.Nanosecond * 17, time.Millisecond, 1234 * time.Millisecond, 10 * time.Minute}

	for _, factor := range factors {
		clock, err := NewClock(factor)
		if err != nil {
			t.Fatalf("NewClock(%v) error = %v", factor, err)
		}
		// Truncation to whole nanoseconds in the real domain is scaled back up by the factor.
		tolerance := time.Duration(factor) + 1
		for _, d := range durations {
			got := clock.ToSimulatedDuration(clock.ToRealDuration(d))
			diff := d - got
			if diff < 0 {
				diff = -diff
			}
			if diff > tolerance {
				t.Errorf("factor %v: round trip of %v = %v, expected within %v", factor, d, got, tolerance)
			}
		}
	}
}

func TestSleepCompletes(t *testing.T) {
	clock, _ := NewClock(100)

	start := time.Now()
	if err := clock.Sleep(context.Background(), time.Second); err != nil {
		t.Errorf("Sleep() error = %v, expected nil", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Sleep(1s) at factor 100 returned after %v, expected at least 10ms", elapsed)
	}
}

func TestSleepCancelled(t *testing.T) {
	clock, _ := NewClock(1)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := clock.Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() error = %v, expected %v", err, context.Canceled)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Sleep() took %v to observe cancellation", elapsed)
	}
}

func TestSleepAlreadyCancelled(t *testing.T) {
	clock, _ := NewClock(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := clock.Sleep(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() on cancelled context error = %v, expected %v", err, context.Canceled)
	}
}
