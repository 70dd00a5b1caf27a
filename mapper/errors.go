package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrDisconnectedQubits is the sentinel wrapped by DisconnectedQubitsError;
	// match it with errors.Is.
	ErrDisconnectedQubits = errors.New("mapper: qubits are not connected on this device")

	// ErrUnsupportedMapper indicates an unrecognised mapper selector string.
	ErrUnsupportedMapper = errors.New("mapper: unsupported mapper selector")
)

// DisconnectedQubitsError names the two qubits a two-qubit gate tried to
// connect when the device has no path between them (spec §7). It wraps
// ErrDisconnectedQubits so callers can still branch with errors.Is, and
// supports errors.As when the specific qubits are needed for a diagnostic.
type DisconnectedQubitsError struct {
	A, B int
}

func (e *DisconnectedQubitsError) Error() string {
	return fmt.Sprintf("mapper: could not find a connection between qubits %d and %d", e.A, e.B)
}

func (e *DisconnectedQubitsError) Unwrap() error { return ErrDisconnectedQubits }
