package layout

import "errors"

var (
	// ErrInsufficientQubits indicates the program uses more logical qubits
	// than the device has physical qubits.
	ErrInsufficientQubits = errors.New("layout: program requires more qubits than the device has")

	// ErrUnsupportedLayout indicates an unrecognised layout selector string.
	ErrUnsupportedLayout = errors.New("layout: unsupported layout selector")
)
