package ast

// Visitor is the post-order traversal contract both the layout applier and
// the swap mapper implement. It mirrors staq's qasmtools::ast::Replacer: a
// qubit-reference rewrite hook plus a CNOT-rewrite hook that may expand a
// single gate into a short replacement sequence.
//
// Walk visits children before parents and preserves statement order, so
// when VisitCNOT is called its Ctrl/Tgt have already been passed through
// VisitQubitRef "as it stood immediately before this gate" (spec §9).
type Visitor interface {
	// VisitQubitRef rewrites a single qubit operand. Implementations that
	// only care about the configured global register should return ref
	// unchanged for any other register name.
	VisitQubitRef(ref QubitRef) QubitRef

	// VisitCNOT rewrites a two-qubit gate whose operands have already been
	// passed through VisitQubitRef. Returning nil keeps the original
	// statement (with its operands already rewritten); returning a
	// non-nil slice replaces the CNOT in place with that statement
	// sequence.
	VisitCNOT(c *CNOTStmt) []Stmt
}

// Walk rewrites p.Stmts in place according to v. It returns nothing and
// never fails itself; Visitor implementations that can fail record the
// error on themselves and surface it to their own caller after Walk
// returns (as mapper.Swap.Run does).
func Walk(p *Program, v Visitor) {
	p.Stmts = walkStmts(p.Stmts, v)
}

func walkStmts(stmts []Stmt, v Visitor) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, walkStmt(s, v)...)
	}
	return out
}

// walkStmt rewrites a single statement and returns its replacement
// sequence (usually length 1).
func walkStmt(s Stmt, v Visitor) []Stmt {
	switch st := s.(type) {
	case *CNOTStmt:
		st.Ctrl = v.VisitQubitRef(st.Ctrl)
		st.Tgt = v.VisitQubitRef(st.Tgt)
		if repl := v.VisitCNOT(st); repl != nil {
			return repl
		}
		return []Stmt{st}

	case *UGateStmt:
		st.Tgt = v.VisitQubitRef(st.Tgt)
		return []Stmt{st}

	case *MeasureStmt:
		st.Qubit = v.VisitQubitRef(st.Qubit)
		return []Stmt{st}

	case *BarrierStmt:
		for i, q := range st.Qubits {
			st.Qubits[i] = v.VisitQubitRef(q)
		}
		return []Stmt{st}

	case *ConditionalStmt:
		// Post-order: rewrite the body before returning the conditional
		// itself; the body sees the permutation as it stands at this
		// point in program order, same as an unconditional statement
		// would (spec §4.4, "classical conditionals").
		body := walkStmt(st.Body, v)
		if len(body) == 1 {
			st.Body = body[0]
			return []Stmt{st}
		}
		// A body that expanded into multiple statements (a non-local
		// two-qubit gate inside a conditional) cannot be represented by
		// a single-bodied ConditionalStmt; wrap each replacement in its
		// own conditional guarding the same classical value.
		wrapped := make([]Stmt, 0, len(body))
		for _, b := range body {
			wrapped = append(wrapped, &ConditionalStmt{Creg: st.Creg, Value: st.Value, Body: b, Pos: st.Pos})
		}
		return wrapped

	case *GateDecl, *OracleDecl:
		// Declarations should not survive inlining; any residue is
		// elided from the mapper's output (spec §4.4).
		return nil

	default:
		return []Stmt{s}
	}
}
