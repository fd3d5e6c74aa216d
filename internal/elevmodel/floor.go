package elevmodel

import (
	"fmt"
	"sync"
)

// Floor holds the passengers waiting on one level.
type Floor struct {
	index int
	env   *Environment

	mu      sync.Mutex
	waiting []*Passenger
}

func newFloor(env *Environment, index int) *Floor {
	return &Floor{
		index: index,
		env:   env,
	}
}

func (f *Floor) Index() int {
	return f.index
}

// AddPassenger puts the passenger in the waiting list and assigns it an
// elevator straight away. The floor lock is released before the elevator is
// selected, so no two locks are ever held together.
func (f *Floor) AddPassenger(passenger *Passenger) {
	f.mu.Lock()
	f.waiting = append(f.waiting, passenger)
	f.mu.Unlock()

	elevator := f.env.elevatorSelection.SelectElevator(passenger, f, f.env)
	elevator.AddPassengerFromFloor(passenger, f.index)
}

// PickUpPassengers removes and returns, in arrival order, the waiting
// passengers the embarkation strategy puts on the given elevator.
func (f *Floor) PickUpPassengers(elevator *Elevator) []*Passenger {
	f.mu.Lock()
	defer f.mu.Unlock()

	var embarking []*Passenger
	remaining := f.waiting[:0]
	for _, passenger := range f.waiting {
		if f.env.embarkation.ShouldEmbark(passenger, f, elevator) {
			embarking = append(embarking, passenger)
		} else {
			remaining = append(remaining, passenger)
		}
	}
	for i := len(remaining); i < len(f.waiting); i++ {
		f.waiting[i] = nil
	}
	f.waiting = remaining

	return embarking
}

// Passengers returns a snapshot of the waiting list.
func (f *Floor) Passengers() []*Passenger {
	f.mu.Lock()
	defer f.mu.Unlock()

	passengers := make([]*Passenger, len(f.waiting))
	copy(passengers, f.waiting)
	return passengers
}

func (f *Floor) NumberOfWaiting() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiting)
}

func (f *Floor) String() string {
	return fmt.Sprintf("[Floor %d. Passengers waiting: %v]", f.index, f.Passengers())
}
