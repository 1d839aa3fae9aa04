package engine

import (
	"math"
	"time"

	"github.com/quantbio/qemd/internal/constants"
	"github.com/quantbio/qemd/internal/models"
)

// rawMetrics holds the unrounded observables of one completed run. Rounding
// happens once, in finalize, so tests can assert on raw and rounded values
// independently.
type rawMetrics struct {
	etePeak       float64
	eteAverage    float64
	coherenceMean float64
	gamma         float64
	steps         int
}

// stepObserver receives the per-step observables of a traced run. The
// density matrix itself is never exposed.
type stepObserver func(step int, t, efficiency, coherence, sinkPop float64)

// Simulate runs one fixed-step integration and returns the rounded result
// record. It fails with *models.ValidationError before any simulation state
// is allocated; once the loop starts there are no fallible paths.
func Simulate(p models.Parameters) (models.Result, error) {
	return simulate(p, nil)
}

// SimulateTrajectory runs one integration while sampling every step, for
// trace logging and transport-layer charting.
func SimulateTrajectory(p models.Parameters) (models.Result, []models.TrajectoryPoint, error) {
	// Validate before sizing the buffer: a negative horizon would turn into
	// a negative capacity and panic instead of failing recoverably.
	if err := p.Validate(); err != nil {
		return models.Result{}, nil, err
	}

	points := make([]models.TrajectoryPoint, 0, int(p.TotalTime/constants.DT))
	res, err := simulate(p, func(_ int, t, eff, coh, sink float64) {
		points = append(points, models.TrajectoryPoint{
			Time:       t,
			Efficiency: eff,
			Coherence:  coh,
			SinkPop:    sink,
		})
	})
	if err != nil {
		return models.Result{}, nil, err
	}
	return res, points, nil
}

func simulate(p models.Parameters, observe stepObserver) (models.Result, error) {
	if err := p.Validate(); err != nil {
		return models.Result{}, err
	}

	start := time.Now()
	raw := integrate(p, observe)
	res := finalize(raw)
	res.ComputationTimeMS = float64(time.Since(start).Microseconds()) / 1000.0
	return res, nil
}

// integrate evolves the density matrix and accumulates the running
// observables. Parameters must already be validated.
func integrate(p models.Parameters, observe stepObserver) rawMetrics {
	n := constants.NumSites
	steps := int(p.TotalTime / constants.DT)

	// Population starts fully localized at the entry node.
	rho := newMatrix(n)
	rho.set(0, 0, 1.0)

	h := buildHamiltonian(p.SiteEnergies, p.Couplings)
	comm := newMatrix(n)

	var eteSum, eteMax, cohSum float64

	for step := 0; step < steps; step++ {
		// All four increments are computed from the pre-step matrix and
		// applied together: plain explicit Euler, no operator splitting.
		commutator(h, rho, comm)

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				d := -comm.at(i, j)
				if i == j {
					d -= p.LossRate * rho.at(i, i)
					if i == constants.SinkIndex {
						d -= p.SinkRate * rho.at(i, i)
					}
				} else {
					d -= p.Gamma * rho.at(i, j)
				}
				rho.add(i, j, constants.DT*d)
			}
		}

		// Efficiency is the population that has left the tracked subspace.
		eff := 1.0 - rho.trace()
		eteSum += eff
		if eff > eteMax {
			eteMax = eff
		}

		var coh float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				coh += math.Abs(rho.at(i, j))
			}
		}
		cohSum += coh

		if observe != nil {
			observe(step, float64(step+1)*constants.DT, eff, coh, rho.at(constants.SinkIndex, constants.SinkIndex))
		}
	}

	return rawMetrics{
		etePeak:       math.Min(eteMax, 1.0),
		eteAverage:    eteSum / float64(steps),
		coherenceMean: cohSum / float64(steps),
		gamma:         p.Gamma,
		steps:         steps,
	}
}

// finalize reduces raw observables to the rounded result record.
func finalize(raw rawMetrics) models.Result {
	composite := constants.CompositeETEWeight*raw.etePeak +
		constants.CompositeGammaWeight/(1.0+raw.gamma*constants.CompositeGammaScale) +
		constants.CompositeCoherenceWeight*raw.coherenceMean

	resilience := math.Max(0, 1.0-math.Abs(raw.gamma-constants.ResilienceReferenceGamma)/constants.ResilienceHalfWidth)

	return models.Result{
		ETEPeak:           round(raw.etePeak, constants.MetricPrecision),
		CoherenceLifetime: round(raw.coherenceMean*constants.CoherenceLifetimeScale, constants.LifetimePrecision),
		GammaStar:         round(raw.gamma, constants.GammaPrecision),
		CompositeScore:    round(composite, constants.MetricPrecision),
		Resilience:        round(resilience, constants.MetricPrecision),
		Verified:          true,
	}
}

// round rounds to a fixed number of decimal places, half away from zero.
func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
