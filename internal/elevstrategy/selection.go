// Package elevstrategy holds the reference scheduling strategies.
package elevstrategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/logger"
)

var Log = logger.GetLogger()

// RandomSelection assigns a uniformly random elevator.
type RandomSelection struct{}

func (RandomSelection) SelectElevator(_ *elevmodel.Passenger, _ *elevmodel.Floor, env *elevmodel.Environment) *elevmodel.Elevator {
	elevators := env.Elevators()
	elevator := elevators[env.Random().Intn(len(elevators))]

	env.Debug(Log).Msgf("Randomly picked elevator %v for new passenger", elevator)
	return elevator
}

// NearestHeadingTowards picks the closest elevator that is not moving away from
// the departure floor, falling back to a random elevator when every elevator
// is moving away.
//
// Elevator states are read while their control loops keep running, so the
// decision may be based on a state that changes right after it is made.
type NearestHeadingTowards struct {
	fallback RandomSelection
}

func (s NearestHeadingTowards) SelectElevator(passenger *elevmodel.Passenger, departureFloor *elevmodel.Floor, env *elevmodel.Environment) *elevmodel.Elevator {
	var closest *elevmodel.Elevator
	closestFloorsAway := math.MaxInt
	target := departureFloor.Index()

	var debugOutput strings.Builder
	if env.DebugOutput() {
		fmt.Fprintf(&debugOutput, "Nearest heading towards floor %d\n", target)
	}

	for _, elevator := range env.Elevators() {
		floor := elevator.CurrentFloor()

		switch elevator.StateOrProjectedState() {
		case elevconsts.GoingUp:
			if floor > target {
				if env.DebugOutput() {
					fmt.Fprintf(&debugOutput, "%v: Not applicable, going up and is above our floor\n", elevator)
				}
				continue
			}
		case elevconsts.GoingDown:
			if floor < target {
				if env.DebugOutput() {
					fmt.Fprintf(&debugOutput, "%v: Not applicable, going down and is below our floor\n", elevator)
				}
				continue
			}
		}

		floorsAway := floor - target
		if floorsAway < 0 {
			floorsAway = -floorsAway
		}
		if env.DebugOutput() {
			fmt.Fprintf(&debugOutput, "%v: %d floors away\n", elevator, floorsAway)
		}

		if floorsAway < closestFloorsAway {
			closestFloorsAway = floorsAway
			closest = elevator
		}
	}

	if closest != nil {
		env.Debug(Log).Msgf("%sClosest: %v", debugOutput.String(), closest)
		return closest
	}

	env.Debug(Log).Msgf("%sNo elevator heading towards floor %d", debugOutput.String(), target)
	return s.fallback.SelectElevator(passenger, departureFloor, env)
}
