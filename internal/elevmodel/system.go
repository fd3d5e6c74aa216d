package elevmodel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
)

// StopGracePeriod bounds how long Stop waits for the elevator agents to exit.
const StopGracePeriod = time.Second

// ElevatorSystem builds the floors and elevators of one simulation and owns
// the lifetime of the elevator agents.
type ElevatorSystem struct {
	env       *Environment
	elevators []*Elevator
	floors    []*Floor

	mu      sync.Mutex
	running bool

	//used for graceful shutdown
	waitGroupArray []*sync.WaitGroup
	cancelArray    []context.CancelFunc
	runningAgents  atomic.Int32
}

type systemOptions struct {
	initialFloors []int
}

type SystemOption func(*systemOptions)

// WithInitialFloors parks elevator i at floors[i] instead of floor 0.
// Elevators without an entry start at floor 0.
func WithInitialFloors(floors ...int) SystemOption {
	return func(o *systemOptions) {
		o.initialFloors = floors
	}
}

func NewElevatorSystem(numElevators, numFloors int, env *Environment, opts ...SystemOption) (*ElevatorSystem, error) {
	if numFloors < 2 {
		return nil, fmt.Errorf("%w: invalid number of floors %d", elevconsts.ErrInvalidParameter, numFloors)
	}
	if numElevators < 1 {
		return nil, fmt.Errorf("%w: invalid number of elevators %d", elevconsts.ErrInvalidParameter, numElevators)
	}
	if env == nil {
		return nil, fmt.Errorf("%w: environment is missing", elevconsts.ErrInvalidParameter)
	}

	options := systemOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if len(options.initialFloors) > numElevators {
		return nil, fmt.Errorf("%w: %d initial floors for %d elevators", elevconsts.ErrInvalidParameter, len(options.initialFloors), numElevators)
	}
	for _, floor := range options.initialFloors {
		if floor < 0 || floor >= numFloors {
			return nil, fmt.Errorf("%w: initial floor %d does not exist", elevconsts.ErrInvalidParameter, floor)
		}
	}

	floors := make([]*Floor, numFloors)
	for i := range floors {
		floors[i] = newFloor(env, i)
	}

	elevators := make([]*Elevator, numElevators)
	for i := range elevators {
		initialFloor := 0
		if i < len(options.initialFloors) {
			initialFloor = options.initialFloors[i]
		}
		elevators[i] = newElevator(env, floors, fmt.Sprintf("E%d", i), initialFloor)
	}

	env.freeze(elevators, floors)

	return &ElevatorSystem{
		env:       env,
		elevators: elevators,
		floors:    floors,
	}, nil
}

func (s *ElevatorSystem) Environment() *Environment {
	return s.env
}

func (s *ElevatorSystem) Elevators() []*Elevator {
	return s.elevators
}

func (s *ElevatorSystem) Floors() []*Floor {
	return s.floors
}

// Start launches one goroutine per elevator. The agents stop when ctx is
// cancelled or when Stop is called.
func (s *ElevatorSystem) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		Log.Error().Msg("Elevator system already running")
		return
	}

	//Launch Threads One By One
	for _, elevator := range s.elevators {
		ctxElev, cancelElev := context.WithCancel(ctx)
		wgElev := &sync.WaitGroup{}

		wgElev.Add(1)
		s.runningAgents.Add(1)
		go func(e *Elevator) {
			defer wgElev.Done()
			defer s.runningAgents.Add(-1)
			e.run(ctxElev)
		}(elevator)

		s.waitGroupArray = append(s.waitGroupArray, wgElev)
		s.cancelArray = append(s.cancelArray, cancelElev)
	}

	s.running = true
}

// Stop cancels every elevator agent and waits for them, at most
// StopGracePeriod in total. It reports whether all agents exited in time.
func (s *ElevatorSystem) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return true
	}

	Log.Debug().Msg("Stopping Elevator System")

	for _, cancel := range s.cancelArray {
		cancel()
	}

	done := make(chan struct{})
	waitGroups := s.waitGroupArray
	go func() {
		for _, wg := range waitGroups {
			wg.Wait()
		}
		close(done)
	}()

	stopped := true
	select {
	case <-done:
	case <-time.After(StopGracePeriod):
		stopped = false
		Log.Warn().Int32("agents", s.runningAgents.Load()).Msg("Elevator agents did not stop within the grace period")
	}

	s.cancelArray = nil
	s.waitGroupArray = nil
	s.running = false

	Log.Debug().Msg("Stopped Elevator System")
	return stopped
}

// RunningAgents is the number of elevator goroutines that have not exited yet.
func (s *ElevatorSystem) RunningAgents() int {
	return int(s.runningAgents.Load())
}

// SubmitPassenger places the passenger on the given floor, which triggers the
// elevator assignment.
func (s *ElevatorSystem) SubmitPassenger(passenger *Passenger, floor int) error {
	if floor < 0 || floor >= len(s.floors) {
		return fmt.Errorf("%w: floor %d does not exist", elevconsts.ErrInvalidParameter, floor)
	}
	destination := passenger.DestinationFloor()
	if destination < 0 || destination >= len(s.floors) || destination == floor {
		return fmt.Errorf("%w: passenger %s can't travel from floor %d to floor %d",
			elevconsts.ErrInvalidParameter, passenger.Name(), floor, destination)
	}

	passenger.depart(floor, time.Now())
	s.floors[floor].AddPassenger(passenger)
	return nil
}
