package elevsim

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

// statusReporter periodically logs a snapshot of every floor and elevator.
type statusReporter struct {
	system   *elevmodel.ElevatorSystem
	interval time.Duration
	log      zerolog.Logger
}

func newStatusReporter(system *elevmodel.ElevatorSystem, interval time.Duration, runID string) *statusReporter {
	return &statusReporter{
		system:   system,
		interval: interval,
		log:      logger.Component("status").With().Str("run", runID).Logger(),
	}
}

func (r *statusReporter) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.log.Info().Msgf("Status: %v", r.system.Snapshot())
			}
		}
	}()

	return done
}
