// Package omics maps tabular gene-expression data onto the physical
// parameters of the transport model.
package omics

// NodeGenes assigns gene symbols to each of the seven transport-chain
// stages. The assignment encodes prior biological knowledge and is a fixed
// process-wide constant; it is never mutated, so it is safe to share across
// concurrent runs without synchronization.
var NodeGenes = [7][]string{
	{"NDUFS1", "NDUFV1", "NDUFA9"}, // complex I entry
	{"SDHA", "SDHB"},               // complex II
	{"UQCRC1", "UQCRC2", "CYC1"},   // complex III
	{"CYCS"},                       // cytochrome c shuttle
	{"COX4I1", "COX5A"},            // complex IV
	{"ATP5F1A", "ATP5F1B"},         // ATP synthase
	{},                             // terminal sink, no assigned genes
}

// StressMarkers are the four genes whose mean expression defines the
// cellular stress level driving the decoherence rate.
var StressMarkers = [4]string{"HIF1A", "NFE2L2", "SOD2", "CAT"}
