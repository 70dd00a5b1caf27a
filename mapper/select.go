package mapper

import (
	"fmt"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
)

// Mapper rewrites prog onto dev and returns the final permutation.
type Mapper interface {
	Run(prog *ast.Program) (*Permutation, error)
}

// Select resolves a mapper selector string to a Mapper, per spec §6
// ("Recognised mapper values: swap | steiner").
func Select(name string, dev *device.Device, registerName string) (Mapper, error) {
	switch name {
	case "swap":
		return NewSwap(dev, registerName), nil
	case "steiner":
		return NewSteiner(dev, registerName), nil
	default:
		return nil, fmt.Errorf("mapper: %q: %w", name, ErrUnsupportedMapper)
	}
}
