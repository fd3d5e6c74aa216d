package elevsim

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevstrategy"
)

const (
	DEFAULT_RANDOM_SEED    = 1977
	DEFAULT_NUM_PASSENGERS = 50
	DEFAULT_NUM_FLOORS     = 10
	DEFAULT_NUM_ELEVATORS  = 4
	DEFAULT_TIME_FACTOR    = 50
	DEFAULT_TIMEOUT        = 10 * time.Minute
	DEFAULT_MIN_DELAY      = 5 * time.Second
	DEFAULT_MAX_DELAY      = 10 * time.Second
)

// DelayFunc draws the simulated delay before the next passenger is deployed.
type DelayFunc func(random *rand.Rand) time.Duration

// UniformDelay draws delays uniformly from [min, max). It always returns min
// when max is not above min.
func UniformDelay(min, max time.Duration) DelayFunc {
	return func(random *rand.Rand) time.Duration {
		if max <= min {
			return min
		}
		return min + time.Duration(random.Int63n(int64(max-min)))
	}
}

// NoDelay deploys passengers back to back.
func NoDelay(*rand.Rand) time.Duration {
	return 0
}

// Parameters describes one simulation run. The With methods return a modified
// copy, so a base set can be shared between runs.
type Parameters struct {
	RandomSeed    int64
	NumPassengers int
	NumFloors     int
	NumElevators  int
	// TimeFactor is how many times faster than real time the simulation runs.
	TimeFactor             float64
	DelayBetweenPassengers DelayFunc
	// Timeout is measured in real time.
	Timeout     time.Duration
	DebugOutput bool
	Constants   elevconsts.Constants

	ElevatorSelection elevmodel.ElevatorSelectionStrategy
	Embarkation       elevmodel.EmbarkationStrategy
	FloorQueueMerge   elevmodel.FloorQueueMergeStrategy

	// StatusInterval is the real-time period of the status log, zero disables it.
	StatusInterval time.Duration
	InitialFloors  []int
	RunID          string
}

func NewParameters() Parameters {
	return Parameters{
		RandomSeed:             DEFAULT_RANDOM_SEED,
		NumPassengers:          DEFAULT_NUM_PASSENGERS,
		NumFloors:              DEFAULT_NUM_FLOORS,
		NumElevators:           DEFAULT_NUM_ELEVATORS,
		TimeFactor:             DEFAULT_TIME_FACTOR,
		DelayBetweenPassengers: UniformDelay(DEFAULT_MIN_DELAY, DEFAULT_MAX_DELAY),
		Timeout:                DEFAULT_TIMEOUT,
		Constants:              elevconsts.DefaultConstants(),
		ElevatorSelection:      elevstrategy.NearestHeadingTowards{},
		Embarkation:            elevstrategy.SimpleEmbarkation{},
		FloorQueueMerge:        elevstrategy.ByOrderMerge{},
	}
}

func (p Parameters) WithRandomSeed(seed int64) Parameters {
	p.RandomSeed = seed
	return p
}

func (p Parameters) WithNumPassengers(numPassengers int) Parameters {
	p.NumPassengers = numPassengers
	return p
}

func (p Parameters) WithNumFloors(numFloors int) Parameters {
	p.NumFloors = numFloors
	return p
}

func (p Parameters) WithNumElevators(numElevators int) Parameters {
	p.NumElevators = numElevators
	return p
}

func (p Parameters) WithTimeFactor(factor float64) Parameters {
	p.TimeFactor = factor
	return p
}

func (p Parameters) WithDelayBetweenPassengers(delay DelayFunc) Parameters {
	p.DelayBetweenPassengers = delay
	return p
}

func (p Parameters) WithTimeout(timeout time.Duration) Parameters {
	p.Timeout = timeout
	return p
}

func (p Parameters) WithDebugOutput(debugOutput bool) Parameters {
	p.DebugOutput = debugOutput
	return p
}

func (p Parameters) WithConstants(constants elevconsts.Constants) Parameters {
	p.Constants = constants
	return p
}

func (p Parameters) WithElevatorSelection(strategy elevmodel.ElevatorSelectionStrategy) Parameters {
	p.ElevatorSelection = strategy
	return p
}

func (p Parameters) WithEmbarkation(strategy elevmodel.EmbarkationStrategy) Parameters {
	p.Embarkation = strategy
	return p
}

func (p Parameters) WithFloorQueueMerge(strategy elevmodel.FloorQueueMergeStrategy) Parameters {
	p.FloorQueueMerge = strategy
	return p
}

func (p Parameters) WithStatusInterval(interval time.Duration) Parameters {
	p.StatusInterval = interval
	return p
}

func (p Parameters) WithInitialFloors(floors ...int) Parameters {
	p.InitialFloors = slices.Clone(floors)
	return p
}

func (p Parameters) WithRunID(runID string) Parameters {
	p.RunID = runID
	return p
}

// Validate checks everything that can be checked before a run is built.
// All failures wrap elevconsts.ErrInvalidParameter.
func (p Parameters) Validate() error {
	switch {
	case p.NumFloors < 2:
		return fmt.Errorf("%w: need at least 2 floors, got %d", elevconsts.ErrInvalidParameter, p.NumFloors)
	case p.NumElevators < 1:
		return fmt.Errorf("%w: need at least 1 elevator, got %d", elevconsts.ErrInvalidParameter, p.NumElevators)
	case p.NumPassengers < 1:
		return fmt.Errorf("%w: need at least 1 passenger, got %d", elevconsts.ErrInvalidParameter, p.NumPassengers)
	case math.IsNaN(p.TimeFactor), math.IsInf(p.TimeFactor, 0), p.TimeFactor <= 0:
		return fmt.Errorf("%w: time factor must be a positive finite number, got %v", elevconsts.ErrInvalidParameter, p.TimeFactor)
	case p.DelayBetweenPassengers == nil:
		return fmt.Errorf("%w: delay between passengers is missing", elevconsts.ErrInvalidParameter)
	case p.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %v", elevconsts.ErrInvalidParameter, p.Timeout)
	case p.StatusInterval < 0:
		return fmt.Errorf("%w: status interval must not be negative, got %v", elevconsts.ErrInvalidParameter, p.StatusInterval)
	case p.ElevatorSelection == nil:
		return fmt.Errorf("%w: elevator selection strategy is missing", elevconsts.ErrInvalidParameter)
	case p.Embarkation == nil:
		return fmt.Errorf("%w: embarkation strategy is missing", elevconsts.ErrInvalidParameter)
	case p.FloorQueueMerge == nil:
		return fmt.Errorf("%w: floor queue merge strategy is missing", elevconsts.ErrInvalidParameter)
	}

	c := p.Constants
	if c.TravelTimeBetweenFloors < 0 || c.DoorOpenCloseTime < 0 || c.PassengerDisembarkTime < 0 || c.PassengerBoardTime < 0 {
		return fmt.Errorf("%w: timing constants must not be negative", elevconsts.ErrInvalidParameter)
	}
	return nil
}

func (p Parameters) String() string {
	return fmt.Sprintf("[Seed = %d, NumPassengers = %d, Floors = %d, Elevators = %d, EmbarkStrat = %s, ElevatorStrat = %s, MergeStrat = %s]",
		p.RandomSeed, p.NumPassengers, p.NumFloors, p.NumElevators,
		elevstrategy.Name(p.Embarkation), elevstrategy.Name(p.ElevatorSelection), elevstrategy.Name(p.FloorQueueMerge))
}
