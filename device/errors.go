package device

import "errors"

// Sentinel errors for the device package. Callers branch on these with
// errors.Is; construction-time problems are wrapped with call context via
// %w at the NewDevice boundary.
var (
	// ErrInvalidDevice indicates a construction parameter was rejected
	// outright (currently: qubit count <= 0).
	ErrInvalidDevice = errors.New("device: invalid device parameters")

	// ErrOutOfRangeQubit indicates a qubit index fell outside [0, n).
	ErrOutOfRangeQubit = errors.New("device: qubit index out of range")
)
