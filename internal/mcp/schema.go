package mcp

import "github.com/quantbio/qemd/internal/models"

// SimulateInput defines the input for the qemd_simulate tool. Every field is
// optional; absent fields fall back to the engine defaults, and omics-derived
// epsilon/gamma take precedence over explicit ones.
type SimulateInput struct {
	Epsilon   []float64 `json:"epsilon,omitempty" jsonschema:"Seven site energies, one per chain node"`
	Gamma     *float64  `json:"gamma,omitempty" jsonschema:"Uniform pure-dephasing rate"`
	Couplings []float64 `json:"couplings,omitempty" jsonschema:"Six nearest-neighbor coupling strengths"`
	KSink     *float64  `json:"k_sink,omitempty" jsonschema:"Extraction rate at the sink node"`
	KLoss     *float64  `json:"k_loss,omitempty" jsonschema:"Non-productive loss rate at every node"`
	Time      *float64  `json:"time,omitempty" jsonschema:"Simulation horizon"`
	OmicsData string    `json:"omicsData,omitempty" jsonschema:"Raw gene,expression table; derived epsilon/gamma override explicit values"`
}

// SimulateOutput defines the output for the qemd_simulate tool.
type SimulateOutput struct {
	Result models.Result `json:"result" jsonschema:"The flat biomarker record for this run"`
}

// SweepOutput defines the output for the qemd_sweep tool.
type SweepOutput struct {
	Curve     []models.SweepPoint `json:"curve" jsonschema:"Peak efficiency at each decoherence grid point"`
	GammaStar float64             `json:"gamma_star" jsonschema:"Decoherence rate maximizing peak efficiency"`
	ETEPeak   float64             `json:"ete_peak" jsonschema:"Peak efficiency at gamma_star"`
}

// MapOmicsInput defines the input for the qemd_map_omics tool.
type MapOmicsInput struct {
	OmicsData string `json:"omicsData" jsonschema:"Raw gene,expression table with a header record"`
}

// MapOmicsOutput defines the output for the qemd_map_omics tool.
type MapOmicsOutput struct {
	Epsilon []float64 `json:"epsilon" jsonschema:"Derived site energies"`
	Gamma   float64   `json:"gamma" jsonschema:"Derived decoherence rate"`
}
