// Package elevclock converts between real and simulated time.
//
// A factor of 1 runs the simulation in real time, a factor below 1 runs it
// slower than real time and a factor above 1 runs it faster.
package elevclock

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
)

type Clock struct {
	factor float64
}

func NewClock(factor float64) (*Clock, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return nil, fmt.Errorf("%w: time factor must be a positive finite number, got %v", elevconsts.ErrInvalidParameter, factor)
	}
	return &Clock{factor: factor}, nil
}

func (c *Clock) Factor() float64 {
	return c.factor
}

func (c *Clock) ToRealDuration(simulated time.Duration) time.Duration {
	return saturate(float64(simulated) / c.factor)
}

func (c *Clock) ToSimulatedDuration(real time.Duration) time.Duration {
	return saturate(float64(real) * c.factor)
}

// Sleep blocks for the real duration matching the simulated duration d.
// It returns ctx.Err() if the context is cancelled first.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	real := c.ToRealDuration(d)
	if real <= 0 {
		return nil
	}

	timer := time.NewTimer(real)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// saturate converts nanoseconds to a Duration, clamping values that do not
// fit in an int64 instead of letting the conversion wrap.
func saturate(nanoseconds float64) time.Duration {
	switch {
	case nanoseconds >= math.MaxInt64:
		return math.MaxInt64
	case nanoseconds <= math.MinInt64:
		return math.MinInt64
	default:
		return time.Duration(nanoseconds)
	}
}
