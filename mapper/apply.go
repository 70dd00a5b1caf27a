package mapper

import (
	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/layout"
)

// LayoutApplier is C3: it rewrites every reference into the configured
// global register from a logical index to its assigned physical index, and
// resizes that register's declaration to the device's full width. It runs
// in a single traversal and never expands a statement into several.
type LayoutApplier struct {
	RegisterName string
}

// Apply rewrites prog in place per l, then grows the register declaration
// to deviceWidth qubits.
func (a LayoutApplier) Apply(prog *ast.Program, l layout.Layout, deviceWidth int) {
	ast.Walk(prog, layoutVisitor{registerName: a.RegisterName, layout: l})
	if prog.Qreg.Name == a.RegisterName {
		prog.Qreg.Size = deviceWidth
	}
}

type layoutVisitor struct {
	registerName string
	layout       layout.Layout
}

func (v layoutVisitor) VisitQubitRef(ref ast.QubitRef) ast.QubitRef {
	if ref.Register != v.registerName {
		return ref
	}
	if ref.Offset < 0 || ref.Offset >= v.layout.Len() {
		return ref
	}
	ref.Offset = v.layout.Physical(ref.Offset)
	return ref
}

// VisitCNOT never expands a gate; LayoutApplier only rewrites operands.
func (layoutVisitor) VisitCNOT(*ast.CNOTStmt) []ast.Stmt { return nil }
