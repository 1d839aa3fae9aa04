// Package fusion combines per-run biomarkers into a single quantum health
// score (QHS) and normalizes metrics across a cohort so runs from different
// samples are comparable.
package fusion

import (
	"math"
	"sort"

	"github.com/quantbio/qemd/internal/constants"
	"github.com/quantbio/qemd/internal/models"
)

// StaticQHS fuses the four normalized metrics with fixed weights through a
// sigmoid. A right-shifted decoherence optimum counts against the score,
// hence the negative gamma weight.
func StaticQHS(etePeak, lifetimeNorm, gammaNorm, resilience float64) float64 {
	z := constants.QHSETEWeight*etePeak +
		constants.QHSLifetimeWeight*lifetimeNorm +
		constants.QHSGammaWeight*gammaNorm +
		constants.QHSResilienceWeight*resilience +
		constants.QHSBias
	return 1.0 / (1.0 + math.Exp(-z))
}

// NormalizeCohort rescales lifetime and gamma into [0, 1] relative to the
// cohort and attaches the fused score to each sample. Lifetime uses
// 5th/95th-percentile scaling so outliers don't dominate; gamma uses plain
// min-max. A constant column normalizes to all zeros.
func NormalizeCohort(samples []models.CohortSample) []models.NormalizedSample {
	if len(samples) == 0 {
		return nil
	}

	lifetimes := make([]float64, len(samples))
	gammas := make([]float64, len(samples))
	for i, s := range samples {
		lifetimes[i] = s.CoherenceLifetime
		gammas[i] = s.GammaStar
	}

	lifetimeNorm := percentileScale(lifetimes, constants.CohortLowPercentile, constants.CohortHighPercentile)
	gammaNorm := minMaxScale(gammas)

	out := make([]models.NormalizedSample, len(samples))
	for i, s := range samples {
		ete := clamp01(s.ETEPeak)
		res := clamp01(s.Resilience)
		out[i] = models.NormalizedSample{
			SampleID:      s.SampleID,
			ETEPeak:       ete,
			LifetimeNorm:  lifetimeNorm[i],
			GammaNorm:     gammaNorm[i],
			Resilience:    res,
			QuantumHealth: StaticQHS(ete, lifetimeNorm[i], gammaNorm[i], res),
		}
	}
	return out
}

// minMaxScale maps values linearly onto [0, 1]. A constant slice maps to
// all zeros rather than dividing by zero.
func minMaxScale(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]float64, len(values))
	if hi-lo < 1e-12 {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// percentileScale maps values onto [0, 1] using the given percentile bounds
// instead of the raw min and max, clipping the tails.
func percentileScale(values []float64, loPct, hiPct float64) []float64 {
	lo := percentile(values, loPct)
	hi := percentile(values, hiPct)
	span := math.Max(hi-lo, 1e-6)

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = clamp01((v - lo) / span)
	}
	return out
}

// percentile computes the p-th percentile with linear interpolation between
// order statistics.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
