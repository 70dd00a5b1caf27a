// Package device models the physical qubit topology a program is mapped
// onto: qubit count, directional two-qubit couplings, per-qubit and
// per-coupling fidelities, and an eagerly-built all-pairs shortest-path
// oracle over the symmetric closure of the coupling graph.
//
// Device is immutable once constructed: every field is written during
// NewDevice and never again, so a *Device can be shared read-only across
// concurrent mapping passes without locking.
package device

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// DefaultFidelity is the fidelity assumed for a coupling or single-qubit
// gate whose fidelity was not supplied (FIDELITY_1 in spec terms).
const DefaultFidelity = 0.99

// Device is an immutable physical-topology model.
//
// adj is not necessarily symmetric: adj[i][j] means a two-qubit gate with
// control i and target j is physically realisable. dist/next are computed
// over the symmetric closure of adj (an edge exists between i and j for
// path-finding purposes whenever adj[i][j] or adj[j][i] holds).
type Device struct {
	name  string
	n     int
	adj   [][]bool
	sqFid []float64
	tqFid [][]float64
	dist  [][]int
	next  [][]int
}

// Option configures a Device under construction. Unlike data validation
// (handled, and logged-and-ignored, inside NewDevice), a nil-valued Option
// constructor argument is a programmer error; none of the options below
// accept one, so none need to panic — this package simply has no such
// case to guard.
type Option func(*buildState)

type edgeSpec struct {
	i, j     int
	fidelity float64
	directed bool
}

type fidSpec struct {
	i        int
	fidelity float64
}

type buildState struct {
	name  string
	edges []edgeSpec
	sq    []fidSpec
}

// WithName sets the device's display name (used by JSON round-tripping and
// diagnostics only; it plays no role in mapping).
func WithName(name string) Option {
	return func(b *buildState) { b.name = name }
}

// WithCoupling adds a symmetric two-qubit coupling between i and j with the
// given fidelity: adj[i][j] and adj[j][i] are both set.
func WithCoupling(i, j int, fidelity float64) Option {
	return func(b *buildState) {
		b.edges = append(b.edges, edgeSpec{i: i, j: j, fidelity: fidelity, directed: false})
	}
}

// WithDirectedCoupling adds a one-way two-qubit coupling: only adj[i][j] is
// set, so a CNOT with control i, target j is realisable but not the
// reverse (the swap mapper falls back to a Hadamard sandwich for the
// reverse direction; see mapper.Swap).
func WithDirectedCoupling(i, j int, fidelity float64) Option {
	return func(b *buildState) {
		b.edges = append(b.edges, edgeSpec{i: i, j: j, fidelity: fidelity, directed: true})
	}
}

// WithSingleQubitFidelity overrides the single-qubit gate fidelity of qubit
// i (default DefaultFidelity).
func WithSingleQubitFidelity(i int, fidelity float64) Option {
	return func(b *buildState) { b.sq = append(b.sq, fidSpec{i: i, fidelity: fidelity}) }
}

// NewDevice builds a Device with n physical qubits and the couplings and
// fidelities described by opts.
//
// n <= 0 fails construction immediately with ErrInvalidDevice. An
// out-of-range qubit index or an out-of-range fidelity in any option is
// reported via a warning log and otherwise ignored — it does not abort
// construction (spec §4.1/§7).
func NewDevice(n int, opts ...Option) (*Device, error) {
	if n <= 0 {
		return nil, fmt.Errorf("device: qubits=%d: %w", n, ErrInvalidDevice)
	}

	b := &buildState{}
	for _, opt := range opts {
		opt(b)
	}

	d := &Device{name: b.name, n: n}
	d.adj = make([][]bool, n)
	d.tqFid = make([][]float64, n)
	d.sqFid = make([]float64, n)
	for i := range d.adj {
		d.adj[i] = make([]bool, n)
		d.tqFid[i] = make([]float64, n)
		d.sqFid[i] = DefaultFidelity
	}

	for _, e := range b.edges {
		if !d.validIndex(e.i) || !d.validIndex(e.j) {
			log.WithFields(log.Fields{"i": e.i, "j": e.j, "n": n}).
				Warn("device: ignoring coupling with out-of-range qubit index")
			continue
		}
		if e.i == e.j {
			log.WithField("qubit", e.i).Warn("device: ignoring self-coupling")
			continue
		}
		if e.fidelity < 0 || e.fidelity > 1 {
			log.WithField("fidelity", e.fidelity).Warn("device: ignoring coupling with out-of-range fidelity")
			continue
		}
		d.adj[e.i][e.j] = true
		d.tqFid[e.i][e.j] = e.fidelity
		if !e.directed {
			d.adj[e.j][e.i] = true
			d.tqFid[e.j][e.i] = e.fidelity
		}
	}

	for _, f := range b.sq {
		if !d.validIndex(f.i) {
			log.WithField("qubit", f.i).Warn("device: ignoring single-qubit fidelity for out-of-range qubit")
			continue
		}
		if f.fidelity < 0 || f.fidelity > 1 {
			log.WithField("fidelity", f.fidelity).Warn("device: ignoring out-of-range single-qubit fidelity")
			continue
		}
		d.sqFid[f.i] = f.fidelity
	}

	d.computeShortestPaths()

	return d, nil
}

// FullyConnected builds a Device where every pair of qubits is symmetrically
// coupled with the given fidelity. Used by invariant 7 (idempotence of
// re-mapping onto a fully connected device) and by callers that want an
// "any-to-any" baseline device.
func FullyConnected(n int, fidelity float64) (*Device, error) {
	opts := make([]Option, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			opts = append(opts, WithCoupling(i, j, fidelity))
		}
	}
	return NewDevice(n, opts...)
}

func (d *Device) validIndex(i int) bool { return i >= 0 && i < d.n }

// Qubits returns the device's physical qubit count n.
func (d *Device) Qubits() int { return d.n }

// Name returns the device's display name, empty if unset.
func (d *Device) Name() string { return d.name }

// Coupled reports whether a two-qubit gate with control i and target j is
// physically realisable. Out-of-range indices report false rather than
// panicking; callers that must distinguish "not coupled" from "invalid
// index" should bounds-check against Qubits() themselves.
func (d *Device) Coupled(i, j int) bool {
	if !d.validIndex(i) || !d.validIndex(j) {
		return false
	}
	return d.adj[i][j]
}

// Fidelity returns the single-qubit gate fidelity of qubit i.
func (d *Device) Fidelity(i int) (float64, error) {
	if !d.validIndex(i) {
		return 0, fmt.Errorf("device: qubit %d: %w", i, ErrOutOfRangeQubit)
	}
	return d.sqFid[i], nil
}

// FidelityPair returns the two-qubit gate fidelity for the coupling (i, j).
// The value is only meaningful when Coupled(i, j) is true.
func (d *Device) FidelityPair(i, j int) (float64, error) {
	if !d.validIndex(i) || !d.validIndex(j) {
		return 0, fmt.Errorf("device: qubits (%d, %d): %w", i, j, ErrOutOfRangeQubit)
	}
	return d.tqFid[i][j], nil
}

// ShortestPath returns the shortest path from src to dst over the symmetric
// closure of the coupling graph, excluding src and including dst. It
// returns (nil, nil) — not an error — when src == dst or when no path
// exists; a missing physical connection between two qubits in a gate is a
// mapper-level DisconnectedQubits error, not a Device-level one.
func (d *Device) ShortestPath(src, dst int) ([]int, error) {
	if !d.validIndex(src) || !d.validIndex(dst) {
		return nil, fmt.Errorf("device: shortest_path(%d, %d): %w", src, dst, ErrOutOfRangeQubit)
	}
	if src == dst {
		return nil, nil
	}
	if d.dist[src][dst] < 0 {
		return nil, nil
	}

	path := make([]int, 0, d.dist[src][dst])
	cur := src
	for cur != dst {
		cur = d.next[cur][dst]
		path = append(path, cur)
	}
	return path, nil
}

// Distance returns the precomputed shortest-path length between i and j, or
// -1 if they lie in different connected components.
func (d *Device) Distance(i, j int) int {
	if !d.validIndex(i) || !d.validIndex(j) {
		return -1
	}
	return d.dist[i][j]
}

// Stats is a read-only diagnostic snapshot of a Device, analogous to
// core.Graph's Stats() in the teacher library.
type Stats struct {
	Qubits               int
	Couplings            int
	MeanTwoQubitFidelity float64
}

// Stats computes a snapshot of the device's size and average two-qubit
// fidelity. It does not affect mapping; it exists for logging and tests.
func (d *Device) Stats() Stats {
	var sum float64
	var count int
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			if d.adj[i][j] {
				sum += d.tqFid[i][j]
				count++
			}
		}
	}
	s := Stats{Qubits: d.n, Couplings: count}
	if count > 0 {
		s.MeanTwoQubitFidelity = sum / float64(count)
	}
	return s
}
