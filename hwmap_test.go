package hwmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oqc-tools/hwmap"
	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
)

func qref(i int) ast.QubitRef { return ast.QubitRef{Register: "q", Offset: i} }

func cnot(c, t int) *ast.CNOTStmt { return &ast.CNOTStmt{Ctrl: qref(c), Tgt: qref(t)} }

func assertAllLocal(t *testing.T, prog *ast.Program, dev *device.Device) {
	t.Helper()
	for _, s := range prog.Stmts {
		c, ok := s.(*ast.CNOTStmt)
		if !ok {
			continue
		}
		assert.True(t, dev.Coupled(c.Ctrl.Offset, c.Tgt.Offset),
			"gate CNOT %d,%d is not local", c.Ctrl.Offset, c.Tgt.Offset)
	}
}

// Default options (linear layout, swap mapper) map a already-local program
// to a no-op rewrite, matching Scenario A end to end through the public API.
func TestMapDefaultsNoSwapsNeeded(t *testing.T) {
	dev, err := device.NewDevice(3, device.WithCoupling(0, 1, 0.99), device.WithCoupling(1, 2, 0.99))
	require.NoError(t, err)
	prog := &ast.Program{
		Qreg:  ast.Register{Name: "q", Size: 3},
		Stmts: []ast.Stmt{cnot(0, 1), cnot(1, 2)},
	}

	perm, err := hwmap.Map(prog, dev)
	require.NoError(t, err)
	assert.True(t, perm.IsBijection())
	assertAllLocal(t, prog, dev)
	assert.Equal(t, 3, prog.Qreg.Size)
}

// Scenario E: bestfit layout places heavily-interacting pairs on coupled
// physical edges, and the mapper needs no swaps afterward on a ring device.
func TestMapBestFitAvoidsSwapsOnRing(t *testing.T) {
	dev, err := device.NewDevice(4,
		device.WithCoupling(0, 1, 0.99),
		device.WithCoupling(1, 2, 0.99),
		device.WithCoupling(2, 3, 0.99),
		device.WithCoupling(3, 0, 0.99),
	)
	require.NoError(t, err)

	// Two disjoint heavy pairs (0,1) and (2,3), each interacting ten times.
	var stmts []ast.Stmt
	for i := 0; i < 10; i++ {
		stmts = append(stmts, cnot(0, 1), cnot(2, 3))
	}
	prog := &ast.Program{
		Qreg:  ast.Register{Name: "q", Size: 4},
		Stmts: stmts,
	}

	perm, err := hwmap.Map(prog, dev, hwmap.WithLayout("bestfit"))
	require.NoError(t, err)
	assert.True(t, perm.IsBijection())
	assertAllLocal(t, prog, dev)

	// bestfit must have placed both heavy pairs on coupled physical edges,
	// so the swap mapper had no non-local gate left to rewrite: statement
	// count is unchanged from the original CNOT-only program.
	assert.Len(t, prog.Stmts, 20)
}

// Scenario F: a teleportation-shaped circuit with a classical conditional
// body survives mapping: the conditional is preserved, its body's gates
// become local, and the rest of the program is otherwise untouched.
func TestMapTeleportationWithConditional(t *testing.T) {
	dev, err := device.NewDevice(3, device.WithCoupling(0, 1, 0.99), device.WithCoupling(1, 2, 0.99))
	require.NoError(t, err)

	prog := &ast.Program{
		Qreg:  ast.Register{Name: "q", Size: 3},
		Cregs: []ast.Register{{Name: "c", Size: 1}},
		Stmts: []ast.Stmt{
			cnot(0, 1),
			&ast.MeasureStmt{Qubit: qref(0), Creg: "c", Bit: 0},
			&ast.ConditionalStmt{
				Creg:  "c",
				Value: 1,
				Body:  cnot(1, 2),
			},
		},
	}

	perm, err := hwmap.Map(prog, dev, hwmap.WithLayout("eager"), hwmap.WithEvaluateAll(true))
	require.NoError(t, err)
	assert.True(t, perm.IsBijection())

	require.Len(t, prog.Stmts, 3)
	_, ok := prog.Stmts[0].(*ast.CNOTStmt)
	assert.True(t, ok)
	_, ok = prog.Stmts[1].(*ast.MeasureStmt)
	assert.True(t, ok)
	cond, ok := prog.Stmts[2].(*ast.ConditionalStmt)
	require.True(t, ok)
	assert.Equal(t, "c", cond.Creg)
	assert.Equal(t, 1, cond.Value)
	body, ok := cond.Body.(*ast.CNOTStmt)
	require.True(t, ok)
	assert.True(t, dev.Coupled(body.Ctrl.Offset, body.Tgt.Offset))
}

func TestMapRejectsUnknownLayout(t *testing.T) {
	dev, err := device.FullyConnected(2, 0.99)
	require.NoError(t, err)
	prog := &ast.Program{Qreg: ast.Register{Name: "q", Size: 2}}

	_, err = hwmap.Map(prog, dev, hwmap.WithLayout("annealer"))
	require.Error(t, err)
}

func TestMapRejectsUnknownMapper(t *testing.T) {
	dev, err := device.FullyConnected(2, 0.99)
	require.NoError(t, err)
	prog := &ast.Program{Qreg: ast.Register{Name: "q", Size: 2}}

	_, err = hwmap.Map(prog, dev, hwmap.WithMapper("annealer"))
	require.Error(t, err)
}

func TestMapPropagatesDisconnectedQubitsError(t *testing.T) {
	dev, err := device.NewDevice(4, device.WithCoupling(0, 1, 0.99), device.WithCoupling(2, 3, 0.99))
	require.NoError(t, err)
	prog := &ast.Program{
		Qreg:  ast.Register{Name: "q", Size: 4},
		Stmts: []ast.Stmt{cnot(0, 2)},
	}

	_, err = hwmap.Map(prog, dev, hwmap.WithLayout("linear"))
	require.Error(t, err)
}

func TestMapHonoursCustomRegisterName(t *testing.T) {
	dev, err := device.FullyConnected(3, 0.99)
	require.NoError(t, err)
	prog := &ast.Program{
		Qreg: ast.Register{Name: "qr", Size: 3},
		Stmts: []ast.Stmt{
			&ast.CNOTStmt{Ctrl: ast.QubitRef{Register: "qr", Offset: 0}, Tgt: ast.QubitRef{Register: "qr", Offset: 2}},
		},
	}

	perm, err := hwmap.Map(prog, dev, hwmap.WithRegisterName("qr"))
	require.NoError(t, err)
	assert.True(t, perm.IsBijection())
	assertAllLocal(t, prog, dev)
}
