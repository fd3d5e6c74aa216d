package elevmodel

import "github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"

// ElevatorSelectionStrategy picks the elevator that serves a passenger who just
// arrived at departureFloor. It is called once per passenger, at submission time.
type ElevatorSelectionStrategy interface {
	SelectElevator(passenger *Passenger, departureFloor *Floor, env *Environment) *Elevator
}

// FloorQueueMergeStrategy folds a (fromFloor, toFloor) request into an elevator's
// stop queue. currentQueue is a private copy the strategy may modify and return.
type FloorQueueMergeStrategy interface {
	Merge(state elevconsts.State, currentFloor int, currentQueue []int, fromFloor, toFloor int) []int
}

// EmbarkationStrategy decides whether a waiting passenger boards an elevator
// stopped at its floor. It runs while the floor is locked and must not call
// back into that floor.
type EmbarkationStrategy interface {
	ShouldEmbark(passenger *Passenger, fromFloor *Floor, elevator *Elevator) bool
}

type ElevatorSelectionFunc func(passenger *Passenger, departureFloor *Floor, env *Environment) *Elevator

func (f ElevatorSelectionFunc) SelectElevator(passenger *Passenger, departureFloor *Floor, env *Environment) *Elevator {
	return f(passenger, departureFloor, env)
}

type FloorQueueMergeFunc func(state elevconsts.State, currentFloor int, currentQueue []int, fromFloor, toFloor int) []int

func (f FloorQueueMergeFunc) Merge(state elevconsts.State, currentFloor int, currentQueue []int, fromFloor, toFloor int) []int {
	return f(state, currentFloor, currentQueue, fromFloor, toFloor)
}

type EmbarkationFunc func(passenger *Passenger, fromFloor *Floor, elevator *Elevator) bool

func (f EmbarkationFunc) ShouldEmbark(passenger *Passenger, fromFloor *Floor, elevator *Elevator) bool {
	return f(passenger, fromFloor, elevator)
}
