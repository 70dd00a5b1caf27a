package hwmap

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/oqc-tools/hwmap/ast"
	"github.com/oqc-tools/hwmap/device"
	"github.com/oqc-tools/hwmap/layout"
	"github.com/oqc-tools/hwmap/mapper"
)

// config holds the resolved Option settings for a Map call.
type config struct {
	layoutName   string
	mapperName   string
	registerName string
	evaluateAll  bool
}

// Option configures a Map call. Map starts from the defaults layout
// "linear", mapper "swap", register "q" and then applies the options.
type Option func(*config)

// WithLayout selects the initial-layout strategy: "linear", "eager" or
// "bestfit".
func WithLayout(name string) Option {
	return func(c *config) { c.layoutName = name }
}

// WithMapper selects the swap-insertion algorithm: "swap" or "steiner".
func WithMapper(name string) Option {
	return func(c *config) { c.mapperName = name }
}

// WithRegisterName overrides the quantum register Map operates on. Programs
// with more than one qreg declaration are out of scope (spec §2, single
// global register); everything outside this register is left untouched.
func WithRegisterName(name string) Option {
	return func(c *config) { c.registerName = name }
}

// WithEvaluateAll requests that Map compute device.Stats for dev before
// mapping and log them at Info level, mainly useful when comparing layout
// strategies across a device sweep.
func WithEvaluateAll(b bool) Option {
	return func(c *config) { c.evaluateAll = b }
}

// Map rewrites prog in place so that every two-qubit gate is local on dev,
// and returns the final logical-to-physical permutation (spec §3-§4): it
// selects and runs a layout.Strategy, applies it with mapper.LayoutApplier
// (C3), then selects and runs a mapper.Mapper (C4 or the C4.1 variant) over
// the laid-out program.
func Map(prog *ast.Program, dev *device.Device, opts ...Option) (*mapper.Permutation, error) {
	cfg := config{
		layoutName:   "linear",
		mapperName:   "swap",
		registerName: "q",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.evaluateAll {
		stats := dev.Stats()
		log.WithFields(log.Fields{
			"qubits":    stats.Qubits,
			"couplings": stats.Couplings,
			"meanFid":   stats.MeanTwoQubitFidelity,
		}).Info("hwmap: device stats")
	}

	strategy, err := layout.Select(cfg.layoutName)
	if err != nil {
		return nil, fmt.Errorf("hwmap: selecting layout: %w", err)
	}
	l, err := strategy.Assign(prog, cfg.registerName, dev)
	if err != nil {
		return nil, fmt.Errorf("hwmap: assigning layout: %w", err)
	}

	applier := mapper.LayoutApplier{RegisterName: cfg.registerName}
	applier.Apply(prog, l, dev.Qubits())

	m, err := mapper.Select(cfg.mapperName, dev, cfg.registerName)
	if err != nil {
		return nil, fmt.Errorf("hwmap: selecting mapper: %w", err)
	}

	perm, err := m.Run(prog)
	if err != nil {
		return nil, fmt.Errorf("hwmap: mapping program: %w", err)
	}

	log.WithFields(log.Fields{
		"layout": cfg.layoutName,
		"mapper": cfg.mapperName,
		"qubits": dev.Qubits(),
	}).Debug("hwmap: mapping complete")

	return perm, nil
}
