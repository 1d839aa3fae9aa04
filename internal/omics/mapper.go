package omics

import (
	"github.com/quantbio/qemd/internal/constants"
	"github.com/quantbio/qemd/internal/models"
)

// MapParameters converts an expression table into the omics-derived model
// parameters: one site energy per node and a single decoherence rate.
// The mapping is total — every table, including an empty one, produces a
// well-defined output. Higher expression lowers a node's energy barrier;
// higher stress-marker expression raises the dephasing rate.
func MapParameters(table ExpressionTable) models.Derived {
	energies := make([]float64, constants.NumSites)
	for node, genes := range NodeGenes {
		energies[node] = constants.BaseSiteEnergy - nodeAverage(table, genes)*constants.ExpressionEnergySlope
	}

	var stressSum float64
	for _, gene := range StressMarkers {
		stressSum += table[gene] // absent genes contribute 0
	}
	stress := stressSum / constants.NumStressMarkers

	return models.Derived{
		SiteEnergies: energies,
		Gamma:        constants.BaseGamma + stress*constants.StressGammaSlope,
	}
}

// nodeAverage returns the mean expression of a node's genes. Genes absent
// from the table contribute 0, and the divisor is floored at 1 so a node
// with no assigned genes averages to 0 by definition.
func nodeAverage(table ExpressionTable, genes []string) float64 {
	var sum float64
	for _, gene := range genes {
		sum += table[gene]
	}
	divisor := len(genes)
	if divisor < 1 {
		divisor = 1
	}
	return sum / float64(divisor)
}

// MapRaw parses a raw omics payload and maps it in one step. This is the
// entry point the transports use.
func MapRaw(raw string) models.Derived {
	return MapParameters(ParseTable(raw))
}
