package elevmodel

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
)

// Passenger is a single travel request. Destination never changes; departure
// data is stamped when the passenger is submitted to a floor and the travel
// duration is recorded once, by the elevator that lets it off.
type Passenger struct {
	name             string
	destinationFloor int

	departureFloor int
	departureTime  time.Time

	travelDuration atomic.Int64
	arrived        atomic.Bool
}

func NewPassenger(name string, destinationFloor int) *Passenger {
	return &Passenger{
		name:             name,
		destinationFloor: destinationFloor,
		departureFloor:   elevconsts.NoFloor,
	}
}

func (p *Passenger) Name() string {
	return p.name
}

func (p *Passenger) DestinationFloor() int {
	return p.destinationFloor
}

// DepartureFloor is NoFloor until the passenger has been submitted.
func (p *Passenger) DepartureFloor() int {
	return p.departureFloor
}

func (p *Passenger) HasArrived() bool {
	return p.arrived.Load()
}

// TravelDuration is the simulated time from departure to arrival, zero before arrival.
func (p *Passenger) TravelDuration() time.Duration {
	if !p.arrived.Load() {
		return 0
	}
	return time.Duration(p.travelDuration.Load())
}

func (p *Passenger) depart(floor int, now time.Time) {
	p.departureFloor = floor
	p.departureTime = now
}

func (p *Passenger) arrive(env *Environment, now time.Time) time.Duration {
	simDuration := env.clock.ToSimulatedDuration(now.Sub(p.departureTime))
	p.travelDuration.Store(int64(simDuration))
	p.arrived.Store(true)

	env.debug(Log).Str("passenger", p.name).Dur("travel", simDuration).Msg("Passenger arrived")
	return simDuration
}

func (p *Passenger) String() string {
	return fmt.Sprintf("%s => %d", p.name, p.destinationFloor)
}
