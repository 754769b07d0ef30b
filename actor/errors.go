package actor

import (
	"errors"
	"math"
)

// DefaultMargin is the collision margin used when a shape is built without an explicit one.
const DefaultMargin = 0.04

// MachineEpsilon is the float64 machine epsilon, used to detect degenerate directions.
var MachineEpsilon = math.Nextafter(1, 2) - 1

var (
	// ErrInvalidArgument reports a caller bug detected at construction or mutation time:
	// non-positive vertex count, stride or margin, or a negative edge endpoint.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInconsistent reports a broken shape invariant found at query time.
	// The shape data is defective and must be rebuilt, it is never repaired.
	ErrInconsistent = errors.New("shape internal consistency violation")
)
