// Package models defines the core data types shared across the qemd engine,
// transports, and storage.
package models

import (
	"fmt"

	"github.com/quantbio/qemd/internal/constants"
)

// Parameters is the full physical input to one simulation run. It is treated
// as immutable once validated; the engine never mutates it.
type Parameters struct {
	// SiteEnergies holds one diagonal energy per chain node.
	SiteEnergies []float64 `json:"epsilon"`

	// Couplings holds the nearest-neighbor coupling between node i and i+1.
	Couplings []float64 `json:"couplings"`

	// Gamma is the uniform pure-dephasing rate applied to every
	// off-diagonal density-matrix entry. Non-negative.
	Gamma float64 `json:"gamma"`

	// SinkRate is the extraction rate applied to the last node's population.
	SinkRate float64 `json:"k_sink"`

	// LossRate is the non-productive dissipation rate applied to every
	// node's population.
	LossRate float64 `json:"k_loss"`

	// TotalTime is the simulation horizon in the same time unit as the rates.
	TotalTime float64 `json:"time"`
}

// ValidationError reports an input that cannot be simulated. It is always
// recoverable by the caller: fix the input and retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DefaultParameters returns the engine-level defaults used when the caller
// supplies neither explicit parameters nor omics data.
func DefaultParameters() Parameters {
	energies := make([]float64, constants.NumSites)
	for i := range energies {
		energies[i] = constants.DefaultSiteEnergy
	}
	return Parameters{
		SiteEnergies: energies,
		Couplings:    []float64{0.1, 0.12, 0.15, 0.13, 0.11, 0.1},
		Gamma:        constants.DefaultGamma,
		SinkRate:     constants.DefaultSinkRate,
		LossRate:     constants.DefaultLossRate,
		TotalTime:    constants.DefaultTotalTime,
	}
}

// Validate checks the structural invariants the engine relies on. It must
// pass before any simulation state is allocated.
func (p Parameters) Validate() error {
	if len(p.SiteEnergies) != constants.NumSites {
		return &ValidationError{
			Field:   "epsilon",
			Message: fmt.Sprintf("expected %d site energies, got %d", constants.NumSites, len(p.SiteEnergies)),
		}
	}
	if len(p.Couplings) != constants.NumCouplings {
		return &ValidationError{
			Field:   "couplings",
			Message: fmt.Sprintf("expected %d couplings, got %d", constants.NumCouplings, len(p.Couplings)),
		}
	}
	if p.Gamma < 0 {
		return &ValidationError{Field: "gamma", Message: "must be non-negative"}
	}
	if p.SinkRate < 0 {
		return &ValidationError{Field: "k_sink", Message: "must be non-negative"}
	}
	if p.LossRate < 0 {
		return &ValidationError{Field: "k_loss", Message: "must be non-negative"}
	}
	// A horizon shorter than one step would leave the averaged observables
	// undefined, so it is rejected up front rather than silently producing
	// a zero-step run.
	if p.TotalTime < constants.DT {
		return &ValidationError{
			Field:   "time",
			Message: fmt.Sprintf("must be at least one integration step (%g)", constants.DT),
		}
	}
	return nil
}
