package elevmodel

import (
	"fmt"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// ElevatorStatus is a point-in-time view of one elevator for observers.
type ElevatorStatus struct {
	Name             string `json:"name"`
	CurrentFloor     int    `json:"current_floor"`
	State            string `json:"state"`
	DestinationFloor int    `json:"destination_floor"`
	NumPassengers    int    `json:"num_passengers"`
	Queue            []int  `json:"queue"`
}

type WaitingPassenger struct {
	Name             string `json:"name"`
	DestinationFloor int    `json:"destination_floor"`
}

// FloorStatus is a point-in-time view of one floor for observers.
type FloorStatus struct {
	Index   int                `json:"index"`
	Waiting []WaitingPassenger `json:"waiting"`
}

type SystemStatus struct {
	Floors    []FloorStatus    `json:"floors"`
	Elevators []ElevatorStatus `json:"elevators"`
}

// Status reads the elevator's observable fields. The fields are read one by
// one without stopping the control loop, so they may straddle a state change.
// The queue is detached from the elevator's internal slice.
func (e *Elevator) Status() ElevatorStatus {
	status := ElevatorStatus{
		Name:             e.name,
		CurrentFloor:     e.CurrentFloor(),
		State:            e.State().String(),
		DestinationFloor: e.DestinationFloor(),
		NumPassengers:    e.NumberOfPassengers(),
	}
	if err := deepcopy.Copy(&status.Queue, *e.queue.Load()); err != nil {
		Log.Error().Err(err).Str("elevator", e.name).Msg("Error copying stop queue")
	}
	return status
}

func (f *Floor) Status() FloorStatus {
	status := FloorStatus{Index: f.index, Waiting: []WaitingPassenger{}}
	for _, passenger := range f.Passengers() {
		status.Waiting = append(status.Waiting, WaitingPassenger{
			Name:             passenger.Name(),
			DestinationFloor: passenger.DestinationFloor(),
		})
	}
	return status
}

// Snapshot collects the status of every floor and elevator. Each part is
// already detached from the live system, so the result can be kept.
func (s *ElevatorSystem) Snapshot() SystemStatus {
	var snapshot SystemStatus
	for _, floor := range s.floors {
		snapshot.Floors = append(snapshot.Floors, floor.Status())
	}
	for _, elevator := range s.elevators {
		snapshot.Elevators = append(snapshot.Elevators, elevator.Status())
	}
	return snapshot
}

func (s SystemStatus) String() string {
	var sb strings.Builder
	sb.WriteString("\nFloors: \n")
	for _, floor := range s.Floors {
		sb.WriteString(floor.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\nElevators: \n")
	for _, elevator := range s.Elevators {
		sb.WriteString(elevator.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (fs FloorStatus) String() string {
	waiting := make([]string, 0, len(fs.Waiting))
	for _, passenger := range fs.Waiting {
		waiting = append(waiting, fmt.Sprintf("%s => %d", passenger.Name, passenger.DestinationFloor))
	}
	return fmt.Sprintf("[Floor %d. Passengers waiting: [%s]]", fs.Index, strings.Join(waiting, " "))
}

func (es ElevatorStatus) String() string {
	return fmt.Sprintf("[Elevator %s. Num passengers = %d. Current floor = %d, State = %s, Floor queue: %v]",
		es.Name, es.NumPassengers, es.CurrentFloor, es.State, es.Queue)
}
