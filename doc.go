// Package hwmap maps an inlined OpenQASM 2.0 program, written against an
// all-to-all logical qubit topology, onto a physical device whose qubit
// connectivity is an arbitrary graph.
//
// It brings together:
//
//	device/ — immutable topology model: couplings, fidelities, all-pairs
//	          shortest paths over the symmetric closure of the coupling graph
//	layout/ — initial logical->physical assignment (linear, eager, bestfit)
//	mapper/ — LayoutApplier (C3) and the swap-inserting mapper (C4): walks
//	          the program in order, inserts SWAP-equivalent CNOT chains
//	          before every non-local two-qubit gate, and tracks the running
//	          permutation
//	ast/    — the minimal Program/Stmt representation the above operate on;
//	          the real parser, optimiser and back-end emitters live outside
//	          this module
//
// Map is the single entry point: it chooses a layout, applies it, and runs
// the selected mapper, returning the final logical-to-physical permutation
// as a witness of where every logical qubit ended up.
package hwmap
