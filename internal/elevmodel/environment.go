package elevmodel

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevclock"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

var Log = logger.GetLogger()

// Environment is the context shared by every floor, elevator and strategy of
// one simulation run. It is built in two phases: NewEnvironment sets the
// configuration, NewElevatorSystem freezes the roster of elevators and floors.
// After that nothing in it changes and it is read without locking.
//
// The random source is only used from the deployment goroutine and from
// strategies called synchronously by it.
type Environment struct {
	clock       *elevclock.Clock
	constants   elevconsts.Constants
	random      *rand.Rand
	debugOutput bool

	elevatorSelection ElevatorSelectionStrategy
	embarkation       EmbarkationStrategy
	floorQueueMerge   FloorQueueMergeStrategy

	elevators []*Elevator
	floors    []*Floor
	frozen    bool
}

func NewEnvironment(
	clock *elevclock.Clock,
	constants elevconsts.Constants,
	random *rand.Rand,
	debugOutput bool,
	elevatorSelection ElevatorSelectionStrategy,
	embarkation EmbarkationStrategy,
	floorQueueMerge FloorQueueMergeStrategy,
) (*Environment, error) {
	switch {
	case clock == nil:
		return nil, fmt.Errorf("%w: clock is missing", elevconsts.ErrInvalidParameter)
	case random == nil:
		return nil, fmt.Errorf("%w: random source is missing", elevconsts.ErrInvalidParameter)
	case elevatorSelection == nil:
		return nil, fmt.Errorf("%w: elevator selection strategy is missing", elevconsts.ErrInvalidParameter)
	case embarkation == nil:
		return nil, fmt.Errorf("%w: embarkation strategy is missing", elevconsts.ErrInvalidParameter)
	case floorQueueMerge == nil:
		return nil, fmt.Errorf("%w: floor queue merge strategy is missing", elevconsts.ErrInvalidParameter)
	}

	return &Environment{
		clock:             clock,
		constants:         constants,
		random:            random,
		debugOutput:       debugOutput,
		elevatorSelection: elevatorSelection,
		embarkation:       embarkation,
		floorQueueMerge:   floorQueueMerge,
	}, nil
}

// freeze publishes the roster. It may only happen once per environment.
func (env *Environment) freeze(elevators []*Elevator, floors []*Floor) {
	if env.frozen {
		panic("elevmodel: environment roster already populated")
	}
	env.elevators = elevators
	env.floors = floors
	env.frozen = true
}

func (env *Environment) Clock() *elevclock.Clock {
	return env.clock
}

func (env *Environment) Constants() elevconsts.Constants {
	return env.constants
}

func (env *Environment) Random() *rand.Rand {
	return env.random
}

func (env *Environment) DebugOutput() bool {
	return env.debugOutput
}

func (env *Environment) ElevatorSelectionStrategy() ElevatorSelectionStrategy {
	return env.elevatorSelection
}

func (env *Environment) EmbarkationStrategy() EmbarkationStrategy {
	return env.embarkation
}

func (env *Environment) FloorQueueMergeStrategy() FloorQueueMergeStrategy {
	return env.floorQueueMerge
}

// Elevators returns the shared roster. Callers must not modify the slice.
func (env *Environment) Elevators() []*Elevator {
	return env.elevators
}

// Floors returns the shared roster. Callers must not modify the slice.
func (env *Environment) Floors() []*Floor {
	return env.floors
}

// Debug returns an info event on log when debug output is enabled, nil otherwise.
// zerolog treats a nil event as a no-op, so the result can always be chained.
func (env *Environment) Debug(log *zerolog.Logger) *zerolog.Event {
	return env.debug(log)
}

func (env *Environment) debug(log *zerolog.Logger) *zerolog.Event {
	if !env.debugOutput {
		return nil
	}
	return log.Info()
}
