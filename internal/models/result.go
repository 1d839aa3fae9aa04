package models

// Result is the immutable output record of one simulation run, serialized
// flat over every transport. All metric fields are rounded at the engine
// boundary; raw values never leave the engine package.
type Result struct {
	// ETEPeak is the peak instantaneous transfer efficiency, in [0, 1].
	ETEPeak float64 `json:"ete_peak"`

	// CoherenceLifetime is the mean off-diagonal coherence magnitude,
	// scaled for presentation.
	CoherenceLifetime float64 `json:"coherence_lifetime"`

	// GammaStar echoes the input decoherence rate. A single run does not
	// search for an optimum; use the sweep operation for a real gamma*.
	GammaStar float64 `json:"gamma_star"`

	// CompositeScore is the fixed weighted combination of peak efficiency,
	// decoherence proximity, and coherence lifetime.
	CompositeScore float64 `json:"composite_score"`

	// Resilience is a proximity heuristic to a reference decoherence rate.
	Resilience float64 `json:"resilience"`

	// Verified reports normal completion. It is not an independent
	// physical check.
	Verified bool `json:"verified"`

	// ComputationTimeMS is the wall-clock duration of the run.
	ComputationTimeMS float64 `json:"computation_time_ms"`
}

// TrajectoryPoint is one sampled step of a traced run.
type TrajectoryPoint struct {
	Time       float64 `json:"time"`
	Efficiency float64 `json:"efficiency"`
	Coherence  float64 `json:"coherence"`
	SinkPop    float64 `json:"sink_population"`
}

// SweepPoint is one grid point of an ENAQT decoherence sweep.
type SweepPoint struct {
	Gamma   float64 `json:"gamma"`
	ETEPeak float64 `json:"ete_peak"`
}
