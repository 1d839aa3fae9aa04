package engine

import (
	"github.com/quantbio/qemd/internal/constants"
	"github.com/quantbio/qemd/internal/models"
)

// DefaultSweepGammas returns the default decoherence grid: SweepSteps points
// linearly spaced over [SweepGammaMin, SweepGammaMax].
func DefaultSweepGammas() []float64 {
	gammas := make([]float64, constants.SweepSteps)
	span := constants.SweepGammaMax - constants.SweepGammaMin
	for i := range gammas {
		gammas[i] = constants.SweepGammaMin + span*float64(i)/float64(constants.SweepSteps-1)
	}
	return gammas
}

// Sweep re-runs the simulation across a decoherence grid, holding all other
// parameters fixed, and returns the resulting ENAQT curve. A single Simulate
// call only echoes its input gamma; the sweep is the operation that actually
// searches for an optimum.
func Sweep(p models.Parameters, gammas []float64) ([]models.SweepPoint, error) {
	if len(gammas) == 0 {
		gammas = DefaultSweepGammas()
	}

	points := make([]models.SweepPoint, 0, len(gammas))
	for _, g := range gammas {
		run := p
		run.Gamma = g
		res, err := Simulate(run)
		if err != nil {
			return nil, err
		}
		// The curve keeps the exact grid value that was simulated; the
		// result's echoed gamma is rounded for presentation.
		points = append(points, models.SweepPoint{Gamma: g, ETEPeak: res.ETEPeak})
	}
	return points, nil
}

// FindGammaStar returns the grid point with the highest peak efficiency.
// Ties resolve to the lowest gamma. An empty curve yields zeros.
func FindGammaStar(points []models.SweepPoint) (gamma, etePeak float64) {
	if len(points) == 0 {
		return 0, 0
	}
	gamma, etePeak = points[0].Gamma, points[0].ETEPeak
	for _, pt := range points[1:] {
		if pt.ETEPeak > etePeak {
			gamma = pt.Gamma
			etePeak = pt.ETEPeak
		}
	}
	return gamma, etePeak
}
