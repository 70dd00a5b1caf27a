package mapper

import (
	log "github.com/sirupsen/logrus"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
)

// Steiner is the alternative CNOT-rich mapper of spec §4.5. It is
// deliberately not a full Steiner-tree CNOT resynthesis engine — spec.md
// scopes that out of the detailed contract — but it does need to honour
// the same (device, program) -> (Permutation, error) surface as Swap so
// that mapper selector "steiner" is not a dead end.
//
// It collects maximal runs of consecutive CNOT statements on the
// configured register and, for runs touching at most maxParityQubits
// distinct qubits, computes and logs their GF(2) parity matrix. No run is
// resynthesised: every gate, in every run, is rewritten by Swap's per-gate
// rewrite.
type Steiner struct {
	registerName string
	dev          *device.Device
	swap         *Swap

	// maxParityQubits bounds how many distinct qubits a CNOT run may touch
	// before Steiner skips computing its parity matrix; this keeps the
	// GF(2) bookkeeping below from growing unbounded on adversarial input.
	maxParityQubits int
}

// NewSteiner builds a Steiner mapper over dev.
func NewSteiner(dev *device.Device, registerName string) *Steiner {
	return &Steiner{
		registerName:    registerName,
		dev:             dev,
		swap:            NewSwap(dev, registerName),
		maxParityQubits: 8,
	}
}

// Run walks prog, identifying maximal CNOT runs and their GF(2) parity
// matrices for diagnostic purposes, then delegates the actual rewrite to
// the embedded Swap mapper so every gate still ends up local to the
// device (spec §4.5: "same external interface (device, program) ->
// permutation").
func (m *Steiner) Run(prog *ast.Program) (*Permutation, error) {
	runs := cnotRuns(prog, m.registerName)
	for _, run := range runs {
		qubits := runQubits(run)
		if len(qubits) > m.maxParityQubits {
			log.WithField("qubits", len(qubits)).
				Debug("mapper: steiner run too wide, deferring to swap mapper")
			continue
		}
		parity := parityMatrix(run, qubits)
		log.WithFields(log.Fields{"qubits": len(qubits), "gates": len(run), "rows": len(parity)}).
			Debug("mapper: steiner run parity matrix computed")
	}
	return m.swap.Run(prog)
}

// cnotRuns returns the maximal runs of consecutive CNOTStmt entries in
// prog's top-level statement list (a parser-inlined program keeps runs
// flat; conditional bodies are not considered part of a run).
func cnotRuns(prog *ast.Program, registerName string) [][]*ast.CNOTStmt {
	var runs [][]*ast.CNOTStmt
	var current []*ast.CNOTStmt
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}
	for _, s := range prog.Stmts {
		c, ok := s.(*ast.CNOTStmt)
		if ok && c.Ctrl.Register == registerName && c.Tgt.Register == registerName {
			current = append(current, c)
			continue
		}
		flush()
	}
	flush()
	return runs
}

// runQubits returns the sorted distinct qubit offsets a CNOT run touches.
func runQubits(run []*ast.CNOTStmt) []int {
	seen := make(map[int]bool)
	for _, c := range run {
		seen[c.Ctrl.Offset] = true
		seen[c.Tgt.Offset] = true
	}
	qubits := make([]int, 0, len(seen))
	for q := range seen {
		qubits = append(qubits, q)
	}
	// Deterministic order regardless of map iteration.
	for i := 1; i < len(qubits); i++ {
		for j := i; j > 0 && qubits[j-1] > qubits[j]; j-- {
			qubits[j-1], qubits[j] = qubits[j], qubits[j-1]
		}
	}
	return qubits
}

// parityMatrix builds the GF(2) parity matrix a CNOT run induces over
// qubits: row i is the initial standard-basis vector for qubits[i], XORed
// with row(control) each time a CNOT(control, target) appears, in program
// order, at row(target). This is the standard linear-reversible-circuit
// encoding of a CNOT-only circuit that a full Steiner-tree resynthesis
// pass would decompose against the device topology.
func parityMatrix(run []*ast.CNOTStmt, qubits []int) [][]bool {
	index := make(map[int]int, len(qubits))
	for i, q := range qubits {
		index[q] = i
	}
	n := len(qubits)
	rows := make([][]bool, n)
	for i := range rows {
		rows[i] = make([]bool, n)
		rows[i][i] = true
	}
	for _, c := range run {
		ci, ti := index[c.Ctrl.Offset], index[c.Tgt.Offset]
		for k := 0; k < n; k++ {
			rows[ti][k] = rows[ti][k] != rows[ci][k]
		}
	}
	return rows
}
