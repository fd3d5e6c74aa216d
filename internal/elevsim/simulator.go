// Package elevsim drives a simulation run: it deploys passengers into an
// elevator system and waits until all of them have arrived.
package elevsim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevclock"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

var Log = logger.GetLogger()

// POLL_INTERVAL is how often, in real time, Run checks for arrivals and the deadline.
const POLL_INTERVAL = 10 * time.Millisecond

type deployment struct {
	passenger      *elevmodel.Passenger
	departureFloor int
	delay          time.Duration
}

type Simulator struct {
	params   Parameters
	MetaData *RunMetaData

	clock      *elevclock.Clock
	system     *elevmodel.ElevatorSystem
	passengers []*elevmodel.Passenger
	plan       []deployment

	mu            sync.Mutex
	started       bool
	stopRequested bool
	cancel        context.CancelFunc
}

// NewSimulator validates the parameters and builds the elevator system and
// the passenger deployment plan. No goroutine is started.
//
// The whole plan is drawn from the seeded random source before any strategy
// gets to use it, so the same seed always yields the same passengers.
func NewSimulator(params Parameters) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	clock, err := elevclock.NewClock(params.TimeFactor)
	if err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(params.RandomSeed))

	plan := make([]deployment, params.NumPassengers)
	passengers := make([]*elevmodel.Passenger, params.NumPassengers)
	for i := range plan {
		destination := random.Intn(params.NumFloors)
		departure := random.Intn(params.NumFloors - 1)
		if departure >= destination {
			departure++
		}

		passengers[i] = elevmodel.NewPassenger(fmt.Sprintf("P%d", i+1), destination)
		plan[i] = deployment{
			passenger:      passengers[i],
			departureFloor: departure,
			delay:          params.DelayBetweenPassengers(random),
		}
	}

	env, err := elevmodel.NewEnvironment(clock, params.Constants, random, params.DebugOutput,
		params.ElevatorSelection, params.Embarkation, params.FloorQueueMerge)
	if err != nil {
		return nil, err
	}

	system, err := elevmodel.NewElevatorSystem(params.NumElevators, params.NumFloors, env,
		elevmodel.WithInitialFloors(params.InitialFloors...))
	if err != nil {
		return nil, err
	}

	return &Simulator{
		params:     params,
		MetaData:   newRunMetaData(params),
		clock:      clock,
		system:     system,
		passengers: passengers,
		plan:       plan,
	}, nil
}

func (s *Simulator) Parameters() Parameters {
	return s.params
}

func (s *Simulator) System() *elevmodel.ElevatorSystem {
	return s.system
}

// Passengers returns the passengers in deployment order.
func (s *Simulator) Passengers() []*elevmodel.Passenger {
	return s.passengers
}

// DepartureFloors returns the planned departure floor of each passenger, in
// the same order as Passengers.
func (s *Simulator) DepartureFloors() []int {
	floors := make([]int, len(s.plan))
	for i, d := range s.plan {
		floors[i] = d.departureFloor
	}
	return floors
}

// Stop ends a running simulation. Run then returns a cancelled result and no
// error. Calling Stop before Run makes Run return immediately.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopRequested = true
	if s.cancel != nil {
		s.cancel()
	}
}

// Run deploys every passenger and waits until all of them have arrived or the
// timeout has elapsed. A simulator can only be run once.
//
// The elevator agents are always stopped before Run returns. A timeout is
// reported as elevconsts.ErrTimeout, while an operator stop (Stop or a
// cancelled ctx) gives a Result with Cancelled set and no error.
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return Result{}, fmt.Errorf("%w: simulation %s has already been run", elevconsts.ErrInvalidParameter, s.MetaData.RunID)
	}
	s.started = true
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cancel = cancel
	if s.stopRequested {
		cancel()
	}
	s.mu.Unlock()

	Log.Info().Str("run", s.MetaData.RunID).Msgf("Starting simulation %v", s.params)
	Log.Debug().Msgf("Run: %v", s.MetaData.String())

	start := time.Now()
	deadline := start.Add(s.params.Timeout)

	s.system.Start(ctx)

	var reporterDone <-chan struct{}
	if s.params.StatusInterval > 0 {
		reporterDone = newStatusReporter(s.system, s.params.StatusInterval, s.MetaData.RunID).Start(ctx)
	}

	err := s.deploy(ctx, deadline)
	if err == nil {
		err = s.waitForArrivals(ctx, deadline)
	}

	realDuration := time.Since(start)
	cancel()
	if !s.system.Stop() {
		Log.Warn().Str("run", s.MetaData.RunID).Msgf("%d elevator agents still running after stop", s.system.RunningAgents())
	}
	if reporterDone != nil {
		<-reporterDone
	}

	result := newResult(realDuration, s.clock, s.passengers)

	switch {
	case err == nil:
		Log.Info().Str("run", s.MetaData.RunID).Msgf("Simulation finished. %v", result)
		return result, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		result.Cancelled = true
		Log.Warn().Str("run", s.MetaData.RunID).Msgf("Simulation stopped. %v", result)
		return result, nil
	default:
		Log.Error().Err(err).Str("run", s.MetaData.RunID).Msgf("Simulation failed. %v", result)
		return result, err
	}
}

// deploy submits the passengers one by one, each after its delay.
func (s *Simulator) deploy(ctx context.Context, deadline time.Time) error {
	deployCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	env := s.system.Environment()
	for _, d := range s.plan {
		if err := s.clock.Sleep(deployCtx, d.delay); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return s.timeoutError()
		}

		env.Debug(Log).Msgf("Deploying passenger %v at floor %d", d.passenger, d.departureFloor)
		if err := s.system.SubmitPassenger(d.passenger, d.departureFloor); err != nil {
			return err
		}
	}
	return nil
}

// waitForArrivals polls until every passenger has arrived. The deadline is
// checked first, so it wins when both happen in the same poll.
func (s *Simulator) waitForArrivals(ctx context.Context, deadline time.Time) error {
	ticker := time.NewTicker(POLL_INTERVAL)
	defer ticker.Stop()

	for {
		if !time.Now().Before(deadline) {
			return s.timeoutError()
		}
		if s.allPassengersArrived() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Simulator) allPassengersArrived() bool {
	for _, passenger := range s.passengers {
		if !passenger.HasArrived() {
			return false
		}
	}
	return true
}

func (s *Simulator) timeoutError() error {
	arrived := 0
	for _, passenger := range s.passengers {
		if passenger.HasArrived() {
			arrived++
		}
	}
	return fmt.Errorf("%w: %d of %d passengers arrived within %v",
		elevconsts.ErrTimeout, arrived, len(s.passengers), s.params.Timeout)
}
