package elevsim

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Permutator expands a base parameter set into the cross product of random
// seeds, elevator counts and floor counts. A dimension left empty takes the
// base value.
type Permutator struct {
	base         Parameters
	randomSeeds  []int64
	numElevators []int
	numFloors    []int
}

func NewPermutator(base Parameters) *Permutator {
	return &Permutator{base: base}
}

func (p *Permutator) RandomSeeds(seeds ...int64) *Permutator {
	p.randomSeeds = seeds
	return p
}

func (p *Permutator) NumElevators(numElevators ...int) *Permutator {
	p.numElevators = numElevators
	return p
}

func (p *Permutator) NumFloors(numFloors ...int) *Permutator {
	p.numFloors = numFloors
	return p
}

// Permute lists the parameter sets ordered by seed, then elevators, then floors.
func (p *Permutator) Permute() []Parameters {
	seeds := p.randomSeeds
	if len(seeds) == 0 {
		seeds = []int64{p.base.RandomSeed}
	}
	elevators := p.numElevators
	if len(elevators) == 0 {
		elevators = []int{p.base.NumElevators}
	}
	floors := p.numFloors
	if len(floors) == 0 {
		floors = []int{p.base.NumFloors}
	}

	list := make([]Parameters, 0, len(seeds)*len(elevators)*len(floors))
	for _, seed := range seeds {
		for _, numElevators := range elevators {
			for _, numFloors := range floors {
				list = append(list, p.base.
					WithNumFloors(numFloors).
					WithNumElevators(numElevators).
					WithRandomSeed(seed))
			}
		}
	}
	return list
}

// BatchResult pairs each parameter set with the result of its run.
type BatchResult struct {
	Params  []Parameters
	Results []Result
}

// AverageSimulatedDuration is the mean simulated duration over all runs.
func (b BatchResult) AverageSimulatedDuration() time.Duration {
	if len(b.Results) == 0 {
		return 0
	}
	var sum time.Duration
	for _, result := range b.Results {
		sum += result.SimulatedTimeDuration
	}
	return sum / time.Duration(len(b.Results))
}

func (b BatchResult) String() string {
	var sb strings.Builder
	for i := range b.Results {
		fmt.Fprintf(&sb, "\nParams: %v\nResult: %v\n", b.Params[i], b.Results[i])
	}
	fmt.Fprintf(&sb, "\nAverage: %d seconds", int64(b.AverageSimulatedDuration()/time.Second))
	return sb.String()
}

// RunBatch runs the parameter sets one after the other and logs a summary.
// It stops at the first run that fails or is cancelled and returns what has
// been completed so far.
func RunBatch(ctx context.Context, paramList []Parameters) (BatchResult, error) {
	var batch BatchResult

	for _, params := range paramList {
		simulator, err := NewSimulator(params)
		if err != nil {
			return batch, err
		}

		result, err := simulator.Run(ctx)
		if err != nil {
			return batch, err
		}
		if result.Cancelled {
			Log.Warn().Msgf("Batch stopped after %d of %d runs", len(batch.Results), len(paramList))
			return batch, nil
		}

		batch.Params = append(batch.Params, params)
		batch.Results = append(batch.Results, result)
	}

	Log.Info().Msg(batch.String())
	return batch, nil
}
