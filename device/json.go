package device

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// wireCouplingDoc is one element of the "couplings" array. Couplings are
// kept as small objects (rather than a bare [src, tgt, fidelity] tuple) so
// a directed edge can carry its "directed" flag without every consumer
// having to special-case array length.
type wireCouplingDoc struct {
	Src      int      `json:"src"`
	Tgt      int      `json:"tgt"`
	Fidelity *float64 `json:"fidelity,omitempty"`
	Directed bool     `json:"directed,omitempty"`
}

type wireDevice struct {
	Name       string            `json:"name"`
	N          int               `json:"n"`
	Couplings  []wireCouplingDoc `json:"couplings"`
	SQFidelity []float64         `json:"sq_fidelity,omitempty"`
}

// MarshalJSON implements the §6 device wire format: name, n, couplings
// (each undirected edge listed once), and sq_fidelity.
func (d *Device) MarshalJSON() ([]byte, error) {
	doc := wireDevice{Name: d.name, N: d.n, SQFidelity: append([]float64(nil), d.sqFid...)}
	seen := make(map[[2]int]bool)
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			if !d.adj[i][j] {
				continue
			}
			if !d.adj[j][i] {
				// Directed-only edge.
				fid := d.tqFid[i][j]
				doc.Couplings = append(doc.Couplings, wireCouplingDoc{Src: i, Tgt: j, Fidelity: &fid, Directed: true})
				continue
			}
			// Symmetric edge: emit once, in (min, max) order.
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			fid := d.tqFid[key[0]][key[1]]
			doc.Couplings = append(doc.Couplings, wireCouplingDoc{Src: key[0], Tgt: key[1], Fidelity: &fid})
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON parses the §6 device wire format. It builds a fresh Device
// via NewDevice, so the same validation and warning-on-ignore policy
// applies to malformed documents as to programmatic construction.
func (d *Device) UnmarshalJSON(data []byte) error {
	var doc wireDevice
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("device: decode: %w", err)
	}
	if doc.N <= 0 {
		return fmt.Errorf("device: qubits=%d: %w", doc.N, ErrInvalidDevice)
	}

	opts := []Option{WithName(doc.Name)}
	for _, c := range doc.Couplings {
		fid := DefaultFidelity
		if c.Fidelity != nil {
			fid = *c.Fidelity
		}
		if c.Directed {
			opts = append(opts, WithDirectedCoupling(c.Src, c.Tgt, fid))
		} else {
			opts = append(opts, WithCoupling(c.Src, c.Tgt, fid))
		}
	}
	for i, f := range doc.SQFidelity {
		opts = append(opts, WithSingleQubitFidelity(i, f))
	}

	built, err := NewDevice(doc.N, opts...)
	if err != nil {
		return err
	}
	*d = *built
	return nil
}

// ParseDevice decodes a Device from the §6 wire format read from r.
func ParseDevice(r io.Reader) (*Device, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("device: read: %w", err)
	}
	d := &Device{}
	if err := d.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return d, nil
}
