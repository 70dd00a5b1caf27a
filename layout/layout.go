// Package layout produces the initial injective mapping from logical
// qubits to physical qubits that the mapper starts from (spec §4.2): one of
// three strategies — linear, eager, bestfit — each consuming the program
// and the device and returning a Layout.
package layout

import (
	"fmt"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
)

// Layout is an injective partial function logical -> physical, total on
// the logical qubits 0..k-1 that the program declares on its global
// register.
type Layout struct {
	assign []int
}

// Physical returns the physical qubit assigned to logical qubit i.
func (l Layout) Physical(i int) int { return l.assign[i] }

// Len reports the number of logical qubits this layout assigns.
func (l Layout) Len() int { return len(l.assign) }

// Strategy computes an initial Layout for prog on dev.
type Strategy interface {
	Assign(prog *ast.Program, registerName string, dev *device.Device) (Layout, error)
}

// Select resolves a layout selector string to a Strategy, per spec §6
// ("Recognised layout values: linear | eager | bestfit").
func Select(name string) (Strategy, error) {
	switch name {
	case "linear":
		return Linear{}, nil
	case "eager":
		return Eager{}, nil
	case "bestfit":
		return BestFit{}, nil
	default:
		return nil, fmt.Errorf("layout: %q: %w", name, ErrUnsupportedLayout)
	}
}

// Linear assigns logical qubit i to physical qubit i, the identity layout.
type Linear struct{}

// Assign implements Strategy.
func (Linear) Assign(prog *ast.Program, registerName string, dev *device.Device) (Layout, error) {
	k := logicalWidth(prog, registerName)
	if k > dev.Qubits() {
		return Layout{}, fmt.Errorf("layout: linear needs %d qubits, device has %d: %w", k, dev.Qubits(), ErrInsufficientQubits)
	}
	assign := make([]int, k)
	for i := range assign {
		assign[i] = i
	}
	return Layout{assign: assign}, nil
}

// Eager assigns physical indices 0, 1, 2, ... in the order logical qubits
// are first referenced by the program. It is equivalent to Linear whenever
// the program references qubits in ascending order, and differs otherwise.
type Eager struct{}

// Assign implements Strategy.
func (Eager) Assign(prog *ast.Program, registerName string, dev *device.Device) (Layout, error) {
	k := logicalWidth(prog, registerName)
	if k > dev.Qubits() {
		return Layout{}, fmt.Errorf("layout: eager needs %d qubits, device has %d: %w", k, dev.Qubits(), ErrInsufficientQubits)
	}

	assign := make([]int, k)
	for i := range assign {
		assign[i] = -1
	}
	used := make([]bool, dev.Qubits())
	next := 0

	visitRefs(prog, registerName, func(logical int) {
		if logical < 0 || logical >= k || assign[logical] != -1 {
			return
		}
		assign[logical] = next
		used[next] = true
		next++
	})

	fillRemaining(assign, used)
	return Layout{assign: assign}, nil
}

// logicalWidth is the number of logical qubits the program declares on its
// configured global register.
func logicalWidth(prog *ast.Program, registerName string) int {
	if prog.Qreg.Name != registerName {
		return 0
	}
	return prog.Qreg.Size
}

// visitRefs calls fn(offset) for every qubit reference into registerName,
// in program order, including inside conditional bodies.
func visitRefs(prog *ast.Program, registerName string, fn func(offset int)) {
	var walk func(ast.Stmt)
	ref := func(r ast.QubitRef) {
		if r.Register == registerName {
			fn(r.Offset)
		}
	}
	walk = func(s ast.Stmt) {
		switch st := s.(type) {
		case *ast.CNOTStmt:
			ref(st.Ctrl)
			ref(st.Tgt)
		case *ast.UGateStmt:
			ref(st.Tgt)
		case *ast.MeasureStmt:
			ref(st.Qubit)
		case *ast.BarrierStmt:
			for _, q := range st.Qubits {
				ref(q)
			}
		case *ast.ConditionalStmt:
			walk(st.Body)
		}
	}
	for _, s := range prog.Stmts {
		walk(s)
	}
}

// fillRemaining assigns any logical qubit still marked -1 to the lowest
// unused physical index, ascending, per spec §4.2's leftover-assignment
// rule shared by eager and bestfit.
func fillRemaining(assign []int, used []bool) {
	next := 0
	for l := range assign {
		if assign[l] != -1 {
			continue
		}
		for used[next] {
			next++
		}
		assign[l] = next
		used[next] = true
		next++
	}
}
