package sim

import "errors"

// Configuration errors abort a run; continuing would fabricate sensor data.
var (
	// ErrCustomRotationUnset indicates the custom sensor mounting was
	// selected without its three angle parameters.
	ErrCustomRotationUnset = errors.New("sim: custom mounting rotation needs roll/pitch/yaw angles")

	// ErrUnknownRotation indicates a mounting rotation with no known matrix.
	ErrUnknownRotation = errors.New("sim: unknown mounting rotation")

	// ErrInvalidDuration indicates a non-positive run duration.
	ErrInvalidDuration = errors.New("sim: run duration must be positive")
)
