package layout

import (
	"fmt"
	"sort"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
)

// BestFit places heavily-interacting logical qubit pairs on high-fidelity
// physical edges, greedily, heaviest interaction first — the same
// sort-by-weight-then-walk shape as the teacher library's graph.Kruskal,
// run in descending order against physical-edge fidelity instead of
// ascending order against edge weight for a minimum spanning tree.
type BestFit struct{}

type logicalPair struct {
	a, b   int
	weight int
}

type physicalEdge struct {
	p, q     int
	fidelity float64
}

// Assign implements Strategy.
func (BestFit) Assign(prog *ast.Program, registerName string, dev *device.Device) (Layout, error) {
	k := logicalWidth(prog, registerName)
	n := dev.Qubits()
	if k > n {
		return Layout{}, fmt.Errorf("layout: bestfit needs %d qubits, device has %d: %w", k, n, ErrInsufficientQubits)
	}

	pairs := interactionWeights(prog, registerName, k)
	physEdges := physicalEdges(dev)

	assign := make([]int, k)
	for i := range assign {
		assign[i] = -1
	}
	used := make([]bool, n)

	for _, pr := range pairs {
		if assign[pr.a] != -1 && assign[pr.b] != -1 {
			continue
		}
		switch {
		case assign[pr.a] != -1:
			placeAdjacent(assign, used, physEdges, pr.a, pr.b, dev)
		case assign[pr.b] != -1:
			placeAdjacent(assign, used, physEdges, pr.b, pr.a, dev)
		default:
			placePair(assign, used, physEdges, pr.a, pr.b)
		}
	}

	fillRemaining(assign, used)
	return Layout{assign: assign}, nil
}

// interactionWeights builds the weighted interaction graph over logical
// qubits 0..k-1: the weight of (a, b) is the count of CNOT statements
// between them anywhere in the program (including conditional bodies),
// sorted by descending weight, ties broken by ascending (a, b).
func interactionWeights(prog *ast.Program, registerName string, k int) []logicalPair {
	weight := make(map[[2]int]int)
	var walk func(ast.Stmt)
	walk = func(s ast.Stmt) {
		switch st := s.(type) {
		case *ast.CNOTStmt:
			if st.Ctrl.Register != registerName || st.Tgt.Register != registerName {
				return
			}
			a, b := st.Ctrl.Offset, st.Tgt.Offset
			if a == b || a < 0 || a >= k || b < 0 || b >= k {
				return
			}
			if a > b {
				a, b = b, a
			}
			weight[[2]int{a, b}]++
		case *ast.ConditionalStmt:
			walk(st.Body)
		}
	}
	for _, s := range prog.Stmts {
		walk(s)
	}

	pairs := make([]logicalPair, 0, len(weight))
	for key, w := range weight {
		pairs = append(pairs, logicalPair{a: key[0], b: key[1], weight: w})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].weight != pairs[j].weight {
			return pairs[i].weight > pairs[j].weight
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	return pairs
}

// physicalEdges lists every coupled physical pair (p, q), p < q, with the
// fidelity of whichever direction is coupled (the higher one, if both
// directions are), sorted by descending fidelity then ascending (p, q).
func physicalEdges(dev *device.Device) []physicalEdge {
	n := dev.Qubits()
	var edges []physicalEdge
	for p := 0; p < n; p++ {
		for q := p + 1; q < n; q++ {
			if !dev.Coupled(p, q) && !dev.Coupled(q, p) {
				continue
			}
			fid, _ := dev.FidelityPair(p, q)
			if rev, err := dev.FidelityPair(q, p); err == nil && rev > fid {
				fid = rev
			}
			edges = append(edges, physicalEdge{p: p, q: q, fidelity: fid})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].fidelity != edges[j].fidelity {
			return edges[i].fidelity > edges[j].fidelity
		}
		if edges[i].p != edges[j].p {
			return edges[i].p < edges[j].p
		}
		return edges[i].q < edges[j].q
	})
	return edges
}

// placePair assigns a fresh logical pair to the highest-fidelity unused
// physical edge.
func placePair(assign []int, used []bool, physEdges []physicalEdge, a, b int) {
	for _, pe := range physEdges {
		if used[pe.p] || used[pe.q] {
			continue
		}
		assign[a], assign[b] = pe.p, pe.q
		used[pe.p], used[pe.q] = true, true
		return
	}
}

// placeAdjacent places logical qubit b next to the physical slot already
// holding logical qubit a: the unused physical neighbour of a's slot with the
// highest coupling fidelity (lowest index on ties). If a's slot has no free
// neighbour, b is left unassigned for the leftover ascending fill.
func placeAdjacent(assign []int, used []bool, physEdges []physicalEdge, a, b int, dev *device.Device) {
	p := assign[a]
	best, bestFid := -1, -1.0
	for q := 0; q < len(used); q++ {
		if used[q] || q == p {
			continue
		}
		if !dev.Coupled(p, q) && !dev.Coupled(q, p) {
			continue
		}
		fid, _ := dev.FidelityPair(p, q)
		if rev, err := dev.FidelityPair(q, p); err == nil && rev > fid {
			fid = rev
		}
		if fid > bestFid {
			best, bestFid = q, fid
		}
	}
	if best != -1 {
		assign[b] = best
		used[best] = true
		return
	}
	// No free physical neighbour of a: leave b unassigned for the leftover
	// ascending fill pass (fillRemaining), which runs after all pairs are
	// processed.
}
