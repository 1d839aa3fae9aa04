package models

// SimulateRequest is the transport-level input shared by the HTTP, MCP, and
// CLI front ends. Every field is optional; absent fields fall back to the
// engine defaults.
type SimulateRequest struct {
	Epsilon   []float64 `json:"epsilon,omitempty"`
	Gamma     *float64  `json:"gamma,omitempty"`
	Couplings []float64 `json:"couplings,omitempty"`
	KSink     *float64  `json:"k_sink,omitempty"`
	KLoss     *float64  `json:"k_loss,omitempty"`
	Time      *float64  `json:"time,omitempty"`

	// OmicsData is a raw gene-expression table. When present, the derived
	// site energies and decoherence rate take precedence over the explicit
	// Epsilon and Gamma fields.
	OmicsData string `json:"omicsData,omitempty"`
}

// Derived holds the parameters the omics mapper contributes. Couplings,
// sink, loss, and horizon are never omics-derived.
type Derived struct {
	SiteEnergies []float64 `json:"epsilon"`
	Gamma        float64   `json:"gamma"`
}

// Resolve merges the request with engine defaults and, when non-nil, the
// omics-derived values. Derived epsilon/gamma win over explicit ones;
// couplings, sink, loss, and time always come from the explicit fields or
// their defaults. The result still needs Validate before simulation.
func (r SimulateRequest) Resolve(derived *Derived) Parameters {
	p := DefaultParameters()

	if r.Epsilon != nil {
		p.SiteEnergies = r.Epsilon
	}
	if r.Gamma != nil {
		p.Gamma = *r.Gamma
	}
	if r.Couplings != nil {
		p.Couplings = r.Couplings
	}
	if r.KSink != nil {
		p.SinkRate = *r.KSink
	}
	if r.KLoss != nil {
		p.LossRate = *r.KLoss
	}
	if r.Time != nil {
		p.TotalTime = *r.Time
	}

	if derived != nil {
		p.SiteEnergies = derived.SiteEnergies
		p.Gamma = derived.Gamma
	}

	return p
}
