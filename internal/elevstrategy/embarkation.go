package elevstrategy

import "github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"

// SimpleEmbarkation boards passengers on elevators that already have their
// destination queued.
type SimpleEmbarkation struct{}

func (SimpleEmbarkation) ShouldEmbark(passenger *elevmodel.Passenger, _ *elevmodel.Floor, elevator *elevmodel.Elevator) bool {
	return elevator.IsGoingToFloor(passenger.DestinationFloor())
}
