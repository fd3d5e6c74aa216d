package elevsim

import (
	"fmt"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevclock"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"
)

type Result struct {
	RealTimeDuration      time.Duration `json:"real_time_duration"`
	SimulatedTimeDuration time.Duration `json:"simulated_time_duration"`
	NumPassengers         int           `json:"num_passengers"`
	NumArrived            int           `json:"num_arrived"`
	// Travel durations are simulated time from submission to arrival, over arrived passengers.
	AverageTravelDuration time.Duration `json:"average_travel_duration"`
	MaxTravelDuration     time.Duration `json:"max_travel_duration"`
	Cancelled             bool          `json:"cancelled"`
}

func newResult(realDuration time.Duration, clock *elevclock.Clock, passengers []*elevmodel.Passenger) Result {
	result := Result{
		RealTimeDuration:      realDuration,
		SimulatedTimeDuration: clock.ToSimulatedDuration(realDuration),
		NumPassengers:         len(passengers),
	}

	var total time.Duration
	for _, passenger := range passengers {
		if !passenger.HasArrived() {
			continue
		}
		result.NumArrived++
		travel := passenger.TravelDuration()
		total += travel
		result.MaxTravelDuration = max(result.MaxTravelDuration, travel)
	}
	if result.NumArrived > 0 {
		result.AverageTravelDuration = total / time.Duration(result.NumArrived)
	}
	return result
}

func (r Result) String() string {
	return fmt.Sprintf("Simulation time duration = %d seconds. Real time duration = %d seconds. Passengers arrived = %d/%d, average travel = %v, max travel = %v",
		int64(r.SimulatedTimeDuration/time.Second), int64(r.RealTimeDuration/time.Second),
		r.NumArrived, r.NumPassengers,
		r.AverageTravelDuration.Round(time.Millisecond), r.MaxTravelDuration.Round(time.Millisecond))
}
