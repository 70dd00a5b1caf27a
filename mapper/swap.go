package mapper

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
)

// Swap is C4, the simple swap-inserting mapping algorithm: a direct port
// of staq::mapping::SwapMapper (original_source/include/mapping/mapping/swap.hpp)
// from a C++ AST-replacer class into a Go ast.Visitor. It walks the program
// in post order and, for each two-qubit gate, inserts a chain of SWAPs
// along a device shortest path before the gate, tracking the running
// permutation rather than swapping back afterwards.
type Swap struct {
	registerName string
	dev          *device.Device
	perm         *Permutation
	err          error
}

// NewSwap builds a Swap mapper over dev whose qubit references live on
// registerName. Its permutation starts at the identity (spec §3).
func NewSwap(dev *device.Device, registerName string) *Swap {
	return &Swap{registerName: registerName, dev: dev, perm: Identity(dev.Qubits())}
}

// Run walks prog and returns the final permutation, or the first error
// encountered (currently only DisconnectedQubitsError; mapping aborts the
// whole program rather than attempting a partial rewrite, per spec §7).
func (m *Swap) Run(prog *ast.Program) (*Permutation, error) {
	ast.Walk(prog, m)
	if m.err != nil {
		return nil, m.err
	}
	return m.perm, nil
}

// VisitQubitRef implements ast.Visitor: the offset observed here has
// already been through LayoutApplier, so it is a physical index; π is
// applied on top of it (spec §4.4, "Traversal contract").
func (m *Swap) VisitQubitRef(ref ast.QubitRef) ast.QubitRef {
	if ref.Register != m.registerName {
		return ref
	}
	ref.Offset = m.perm.At(ref.Offset)
	return ref
}

// VisitCNOT implements ast.Visitor: the heart of the mapper (spec §4.4,
// "Per-gate rewrite"). ctrl and tgt have already been permuted by the time
// this is called (VisitQubitRef ran on them via ast.Walk's post-order
// traversal), so a shortest path between them is a shortest path in
// physical space right now.
func (m *Swap) VisitCNOT(c *ast.CNOTStmt) []ast.Stmt {
	if m.err != nil {
		return nil
	}
	if c.Ctrl.Register != m.registerName || c.Tgt.Register != m.registerName {
		return nil
	}

	ctrl, tgt := c.Ctrl.Offset, c.Tgt.Offset
	path, err := m.dev.ShortestPath(ctrl, tgt)
	if err != nil {
		m.err = err
		return nil
	}
	if len(path) == 0 {
		m.err = &DisconnectedQubitsError{A: ctrl, B: tgt}
		return nil
	}

	swaps := 0
	out := make([]ast.Stmt, 0, 3*len(path))
	i := ctrl
	for _, j := range path {
		if j == tgt {
			if m.dev.Coupled(i, j) {
				out = append(out, m.cnot(i, j, c.Pos))
			} else {
				out = append(out, m.swappedCNOT(i, j, c.Pos)...)
			}
			break
		}

		// Swap physical slots i and j: three CNOTs, the first and last
		// along whichever direction the device actually supports so
		// only the middle one might need a Hadamard sandwich.
		si, sj := i, j
		if !m.dev.Coupled(si, sj) {
			si, sj = sj, si
		}
		out = append(out, m.cnot(si, sj, c.Pos))
		if m.dev.Coupled(sj, si) {
			out = append(out, m.cnot(sj, si, c.Pos))
		} else {
			out = append(out, m.swappedCNOT(sj, si, c.Pos)...)
		}
		out = append(out, m.cnot(si, sj, c.Pos))

		m.perm.Swap(i, j)
		swaps++
		i = j
	}

	if swaps > 0 {
		log.WithFields(log.Fields{"ctrl": ctrl, "tgt": tgt, "path": path, "swaps": swaps}).
			Debug("mapper: rewrote non-local two-qubit gate")
	}

	return out
}

func (m *Swap) cnot(ctrl, tgt int, pos ast.Position) *ast.CNOTStmt {
	return &ast.CNOTStmt{
		Ctrl: ast.QubitRef{Register: m.registerName, Offset: ctrl},
		Tgt:  ast.QubitRef{Register: m.registerName, Offset: tgt},
		Pos:  pos,
	}
}

func (m *Swap) hadamard(qubit int, pos ast.Position) *ast.UGateStmt {
	return &ast.UGateStmt{
		Name:   "U",
		Theta:  math.Pi / 2,
		Phi:    0,
		Lambda: math.Pi,
		Tgt:    ast.QubitRef{Register: m.registerName, Offset: qubit},
		Pos:    pos,
	}
}

// swappedCNOT realises "CNOT ctrl tgt" on a device that only supports the
// reverse direction, via the Hadamard-sandwich identity (spec §4.4):
// CNOT ctrl tgt == H ctrl; H tgt; CNOT tgt ctrl; H ctrl; H tgt.
func (m *Swap) swappedCNOT(ctrl, tgt int, pos ast.Position) []ast.Stmt {
	return []ast.Stmt{
		m.hadamard(ctrl, pos),
		m.hadamard(tgt, pos),
		m.cnot(tgt, ctrl, pos),
		m.hadamard(ctrl, pos),
		m.hadamard(tgt, pos),
	}
}
