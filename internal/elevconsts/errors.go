package elevconsts

import "errors"

var (
	// ErrInvalidParameter is returned for a malformed scenario configuration.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrTimeout is returned when not every passenger arrived before the deadline.
	ErrTimeout = errors.New("simulation timed out before all passengers have arrived")
)
