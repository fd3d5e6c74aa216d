package elevconsts

import "time"

// NoFloor marks an elevator without an in-transit destination.
const NoFloor = -1

type State int

const (
	Stopped State = iota // 0
	GoingUp
	GoingDown
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "STOPPED"
	case GoingUp:
		return "GOING_UP"
	case GoingDown:
		return "GOING_DOWN"
	default:
		return "UNDEFINED"
	}
}

// Constants are the simulated durations of the physical steps of an elevator.
type Constants struct {
	TravelTimeBetweenFloors time.Duration `yaml:"travel_time_between_floors" json:"travel_time_between_floors"`
	DoorOpenCloseTime       time.Duration `yaml:"door_open_close_time" json:"door_open_close_time"`
	PassengerDisembarkTime  time.Duration `yaml:"passenger_disembark_time" json:"passenger_disembark_time"`
	PassengerBoardTime      time.Duration `yaml:"passenger_board_time" json:"passenger_board_time"`
}

func DefaultConstants() Constants {
	return Constants{
		TravelTimeBetweenFloors: 2 * time.Second,
		DoorOpenCloseTime:       2 * time.Second,
		PassengerDisembarkTime:  1 * time.Second,
		PassengerBoardTime:      1 * time.Second,
	}
}
