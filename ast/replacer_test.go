package ast_test

import (
	"testing"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityVisitor rewrites refs through a static map and never expands CNOTs.
type identityVisitor struct {
	perm map[int]int
}

func (v identityVisitor) VisitQubitRef(ref ast.QubitRef) ast.QubitRef {
	if ref.Register != "q" {
		return ref
	}
	ref.Offset = v.perm[ref.Offset]
	return ref
}

func (v identityVisitor) VisitCNOT(*ast.CNOTStmt) []ast.Stmt { return nil }

func TestWalkRewritesQubitRefsOnly(t *testing.T) {
	prog := &ast.Program{
		Qreg: ast.Register{Name: "q", Size: 3},
		Stmts: []ast.Stmt{
			&ast.CNOTStmt{Ctrl: ast.QubitRef{Register: "q", Offset: 0}, Tgt: ast.QubitRef{Register: "q", Offset: 1}},
			&ast.MeasureStmt{Qubit: ast.QubitRef{Register: "q", Offset: 2}, Creg: "c", Bit: 0},
		},
	}
	ast.Walk(prog, identityVisitor{perm: map[int]int{0: 2, 1: 0, 2: 1}})

	require.Len(t, prog.Stmts, 2)
	cnot := prog.Stmts[0].(*ast.CNOTStmt)
	assert.Equal(t, 2, cnot.Ctrl.Offset)
	assert.Equal(t, 0, cnot.Tgt.Offset)
	meas := prog.Stmts[1].(*ast.MeasureStmt)
	assert.Equal(t, 1, meas.Qubit.Offset)
}

// expandingVisitor replaces every CNOT with two statements to exercise
// in-place expansion and conditional re-wrapping.
type expandingVisitor struct{}

func (expandingVisitor) VisitQubitRef(ref ast.QubitRef) ast.QubitRef { return ref }

func (expandingVisitor) VisitCNOT(c *ast.CNOTStmt) []ast.Stmt {
	return []ast.Stmt{
		&ast.UGateStmt{Name: "h", Tgt: c.Ctrl},
		c,
	}
}

func TestWalkExpandsConditionalBody(t *testing.T) {
	prog := &ast.Program{
		Qreg: ast.Register{Name: "q", Size: 2},
		Stmts: []ast.Stmt{
			&ast.ConditionalStmt{
				Creg: "c", Value: 1,
				Body: &ast.CNOTStmt{Ctrl: ast.QubitRef{Register: "q", Offset: 0}, Tgt: ast.QubitRef{Register: "q", Offset: 1}},
			},
		},
	}
	ast.Walk(prog, expandingVisitor{})

	require.Len(t, prog.Stmts, 2)
	for _, s := range prog.Stmts {
		cond, ok := s.(*ast.ConditionalStmt)
		require.True(t, ok)
		assert.Equal(t, "c", cond.Creg)
		assert.Equal(t, 1, cond.Value)
	}
}

func TestWalkElidesDeclarations(t *testing.T) {
	prog := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.GateDecl{Name: "foo"},
			&ast.OracleDecl{Name: "bar"},
			&ast.MeasureStmt{Qubit: ast.QubitRef{Register: "q", Offset: 0}},
		},
	}
	ast.Walk(prog, identityVisitor{perm: map[int]int{0: 0}})
	require.Len(t, prog.Stmts, 1)
	_, ok := prog.Stmts[0].(*ast.MeasureStmt)
	assert.True(t, ok)
}
