package elevmodel

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
)

// Elevator is an autonomous agent. Its control loop runs in its own goroutine,
// pops floors off the stop queue and travels to them one at a time.
//
// The stop queue is published copy-on-write: writers hold queueMu and store a
// fresh slice, readers load the pointer without locking. Current floor, state
// and destination are atomics so observers and other elevators' strategies can
// read them while the loop runs.
type Elevator struct {
	name   string
	env    *Environment
	floors []*Floor
	log    zerolog.Logger

	currentFloor     atomic.Int64
	state            atomic.Int32
	destinationFloor atomic.Int64
	numPassengers    atomic.Int32

	queueMu sync.Mutex
	queue   atomic.Pointer[[]int]
	wake    chan struct{}

	// Only touched by the control loop.
	passengers []*Passenger
}

func newElevator(env *Environment, floors []*Floor, name string, initialFloor int) *Elevator {
	e := &Elevator{
		name:   name,
		env:    env,
		floors: floors,
		log:    Log.With().Str("elevator", name).Logger(),
		wake:   make(chan struct{}, 1),
	}
	e.currentFloor.Store(int64(initialFloor))
	e.state.Store(int32(elevconsts.Stopped))
	e.destinationFloor.Store(elevconsts.NoFloor)
	e.queue.Store(&[]int{})
	return e
}

func (e *Elevator) Name() string {
	return e.name
}

func (e *Elevator) CurrentFloor() int {
	return int(e.currentFloor.Load())
}

func (e *Elevator) State() elevconsts.State {
	return elevconsts.State(e.state.Load())
}

// DestinationFloor is the floor the elevator is travelling to, NoFloor when idle.
func (e *Elevator) DestinationFloor() int {
	return int(e.destinationFloor.Load())
}

func (e *Elevator) NumberOfPassengers() int {
	return int(e.numPassengers.Load())
}

// Queue returns a copy of the stop queue.
func (e *Elevator) Queue() []int {
	return slices.Clone(*e.queue.Load())
}

// IsGoingToFloor reports whether floor is still in the stop queue.
func (e *Elevator) IsGoingToFloor(floor int) bool {
	return slices.Contains(*e.queue.Load(), floor)
}

// StateOrProjectedState returns the actual state while moving. A stopped
// elevator with queued stops reports the direction of the head of its queue,
// so selection can treat it as already committed to that direction.
func (e *Elevator) StateOrProjectedState() elevconsts.State {
	state := e.State()
	if state != elevconsts.Stopped {
		return state
	}

	queue := *e.queue.Load()
	if len(queue) == 0 {
		return elevconsts.Stopped
	}
	if queue[0] > e.CurrentFloor() {
		return elevconsts.GoingUp
	}
	return elevconsts.GoingDown
}

// AddPassengerFromFloor is called by a floor once this elevator has been
// selected for the passenger. The merge strategy decides the new stop queue.
func (e *Elevator) AddPassengerFromFloor(passenger *Passenger, fromFloor int) {
	e.queueMu.Lock()
	current := *e.queue.Load()
	e.env.debug(&e.log).Msgf("Queueing floors %d and %d to current queue %v", fromFloor, passenger.DestinationFloor(), current)

	merged := e.env.floorQueueMerge.Merge(e.State(), e.CurrentFloor(), slices.Clone(current), fromFloor, passenger.DestinationFloor())
	e.queue.Store(&merged)

	e.env.debug(&e.log).Msgf("Merged queue: %v", merged)
	e.queueMu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// run is the control loop. It returns when ctx is cancelled.
func (e *Elevator) run(ctx context.Context) {
	e.env.debug(&e.log).Msg("Controller loop starting")

	for {
		floor, err := e.nextFloor(ctx)
		if err != nil {
			break
		}
		if err := e.move(ctx, floor); err != nil {
			break
		}
	}

	e.env.debug(&e.log).Msg("Controller loop exiting")
}

// nextFloor pops the head of the stop queue, waiting for work if it is empty.
func (e *Elevator) nextFloor(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return elevconsts.NoFloor, err
		}

		e.queueMu.Lock()
		queue := *e.queue.Load()
		if len(queue) > 0 {
			next := queue[0]
			rest := queue[1:]
			e.queue.Store(&rest)
			e.queueMu.Unlock()

			if next < 0 || next >= len(e.floors) {
				e.log.Error().Int("floor", next).Msg("Queued floor does not exist, skipping it")
				continue
			}
			return next, nil
		}
		e.queueMu.Unlock()

		select {
		case <-ctx.Done():
			return elevconsts.NoFloor, ctx.Err()
		case <-e.wake:
		}
	}
}

// move travels floor by floor to the target and runs the arrival procedure there.
func (e *Elevator) move(ctx context.Context, floor int) error {
	e.env.debug(&e.log).Msgf("Going to floor %d", floor)
	e.destinationFloor.Store(int64(floor))
	defer e.destinationFloor.Store(elevconsts.NoFloor)

	current := e.CurrentFloor()
	if floor != current {
		step := 1
		state := elevconsts.GoingUp
		if floor < current {
			step = -1
			state = elevconsts.GoingDown
		}
		e.state.Store(int32(state))

		for current != floor {
			if err := e.env.clock.Sleep(ctx, e.env.constants.TravelTimeBetweenFloors); err != nil {
				return err
			}
			current += step
			e.currentFloor.Store(int64(current))
		}
	}

	return e.arrive(ctx)
}

// arrive opens the doors, lets passengers off, takes waiting passengers on and
// closes the doors again.
func (e *Elevator) arrive(ctx context.Context) error {
	e.state.Store(int32(elevconsts.Stopped))
	clock := e.env.clock
	constants := e.env.constants
	floor := e.CurrentFloor()

	e.env.debug(&e.log).Msgf("Arrived at floor %d. Opening doors..", floor)
	if err := clock.Sleep(ctx, constants.DoorOpenCloseTime); err != nil {
		return err
	}

	if len(e.passengers) > 0 {
		e.env.debug(&e.log).Msg("Letting off passengers")

		var leaving, staying []*Passenger
		for _, passenger := range e.passengers {
			if passenger.DestinationFloor() == floor {
				leaving = append(leaving, passenger)
			} else {
				staying = append(staying, passenger)
			}
		}
		e.passengers = staying

		for _, passenger := range leaving {
			passenger.arrive(e.env, time.Now())
			e.numPassengers.Add(-1)
			if err := clock.Sleep(ctx, constants.PassengerDisembarkTime); err != nil {
				return err
			}
		}
		e.env.debug(&e.log).Msgf("Let off %d passengers, now taking on passengers...", len(leaving))
	}

	takenOn := 0
	for _, passenger := range e.floors[floor].PickUpPassengers(e) {
		if err := clock.Sleep(ctx, constants.PassengerBoardTime); err != nil {
			return err
		}
		e.passengers = append(e.passengers, passenger)
		e.numPassengers.Add(1)
		takenOn++
	}

	e.env.debug(&e.log).Msgf("Took on %d passengers, now closing doors...", takenOn)
	if err := clock.Sleep(ctx, constants.DoorOpenCloseTime); err != nil {
		return err
	}

	e.env.debug(&e.log).Msg("Arrival procedure complete")
	return nil
}

func (e *Elevator) String() string {
	return fmt.Sprintf("[Elevator %s. Num passengers = %d. Current floor = %d, State = %s, Floor queue: %v]",
		e.name, e.NumberOfPassengers(), e.CurrentFloor(), e.State(), *e.queue.Load())
}
