// Package constants provides named constants used throughout the qemd codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Chain topology constants
const (
	// NumSites is the number of nodes in the electron transport chain model.
	// The topology is a fixed linear chain; it is not configurable.
	NumSites = 7

	// NumCouplings is the number of nearest-neighbor couplings in the chain.
	NumCouplings = NumSites - 1

	// SinkIndex is the node whose population is extracted by the sink term.
	SinkIndex = NumSites - 1
)

// Integration constants
const (
	// DT is the fixed integration step in the model's time unit.
	DT = 0.05

	// DefaultTotalTime is the default simulation horizon.
	DefaultTotalTime = 50.0
)

// Default dissipation rates, in inverse time units.
const (
	// DefaultGamma is the default uniform pure-dephasing rate.
	DefaultGamma = 0.03

	// DefaultSinkRate is the default extraction rate at the sink node.
	DefaultSinkRate = 0.03

	// DefaultLossRate is the default non-productive loss rate at every node.
	DefaultLossRate = 0.005
)

// DefaultSiteEnergy is the diagonal energy assigned to every node when the
// caller supplies neither explicit energies nor omics data.
const DefaultSiteEnergy = 0.3

// Composite score weights. The score is a fixed weighted combination of
// peak efficiency, a decoherence-proximity term, and coherence lifetime.
const (
	// CompositeETEWeight weights peak transfer efficiency.
	CompositeETEWeight = 0.5

	// CompositeGammaWeight weights the decoherence proximity term
	// 1 / (1 + gamma * CompositeGammaScale).
	CompositeGammaWeight = 0.3

	// CompositeGammaScale scales gamma inside the proximity term.
	CompositeGammaScale = 50.0

	// CompositeCoherenceWeight weights the unscaled coherence lifetime.
	CompositeCoherenceWeight = 0.2
)

// Resilience heuristic constants. Resilience is a proximity measure to a
// fixed reference decoherence rate, not a perturbation test.
const (
	// ResilienceReferenceGamma is the reference decoherence rate.
	ResilienceReferenceGamma = 0.03

	// ResilienceHalfWidth is the distance from the reference at which
	// resilience reaches zero.
	ResilienceHalfWidth = 0.05
)

// CoherenceLifetimeScale converts the unitless mean coherence into the
// presentation unit reported in results.
const CoherenceLifetimeScale = 100.0

// Omics mapping coefficients. Higher expression lowers the site energy
// barrier; higher stress raises the dephasing rate.
const (
	// BaseSiteEnergy is the site energy at zero expression.
	BaseSiteEnergy = 0.5

	// ExpressionEnergySlope is subtracted per unit of mean node expression.
	ExpressionEnergySlope = 0.05

	// BaseGamma is the decoherence rate at zero stress.
	BaseGamma = 0.02

	// StressGammaSlope is added to gamma per unit of stress level.
	StressGammaSlope = 0.01

	// NumStressMarkers is the fixed divisor for the stress level mean.
	NumStressMarkers = 4
)

// ENAQT sweep grid. The sweep searches for the decoherence rate that
// maximizes peak transfer efficiency.
const (
	// SweepGammaMin is the lowest decoherence rate in the default grid.
	SweepGammaMin = 0.005

	// SweepGammaMax is the highest decoherence rate in the default grid.
	SweepGammaMax = 0.05

	// SweepSteps is the number of grid points in the default sweep.
	SweepSteps = 20
)

// Result rounding precisions, in decimal places. Rounding happens once, at
// the boundary between raw computation and the returned record.
const (
	// MetricPrecision rounds efficiency, composite score, and resilience.
	MetricPrecision = 3

	// GammaPrecision rounds the reported decoherence rate.
	GammaPrecision = 4

	// LifetimePrecision rounds the scaled coherence lifetime.
	LifetimePrecision = 2
)

// Static QHS fusion weights. QHS is a sigmoid over the four normalized
// metrics; a higher decoherence optimum counts against the score.
const (
	QHSETEWeight        = 1.0
	QHSLifetimeWeight   = 1.0
	QHSGammaWeight      = -1.0
	QHSResilienceWeight = 0.5
	QHSBias             = 0.0
)

// Cohort normalization percentile bounds for coherence lifetime scaling.
const (
	CohortLowPercentile  = 5.0
	CohortHighPercentile = 95.0
)
