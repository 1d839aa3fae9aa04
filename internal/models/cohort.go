package models

// CohortSample pairs a stored run's metrics with its sample identifier for
// cohort-level normalization and fusion.
type CohortSample struct {
	SampleID          string  `json:"sample_id"`
	ETEPeak           float64 `json:"ete_peak"`
	CoherenceLifetime float64 `json:"coherence_lifetime"`
	GammaStar         float64 `json:"gamma_star"`
	Resilience        float64 `json:"resilience"`
}

// NormalizedSample is a CohortSample with lifetime and gamma rescaled into
// [0, 1] relative to the cohort, plus the fused health score.
type NormalizedSample struct {
	SampleID      string  `json:"sample_id"`
	ETEPeak       float64 `json:"ete_peak"`
	LifetimeNorm  float64 `json:"lifetime_norm"`
	GammaNorm     float64 `json:"gamma_norm"`
	Resilience    float64 `json:"resilience"`
	QuantumHealth float64 `json:"qhs"`
}
