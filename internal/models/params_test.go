package models

import (
	"errors"
	"testing"

	"github.com/quantbio/qemd/internal/constants"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()

	if len(p.SiteEnergies) != constants.NumSites {
		t.Errorf("len(SiteEnergies) = %d, want %d", len(p.SiteEnergies), constants.NumSites)
	}
	for i, e := range p.SiteEnergies {
		if e != constants.DefaultSiteEnergy {
			t.Errorf("SiteEnergies[%d] = %v, want %v", i, e, constants.DefaultSiteEnergy)
		}
	}
	if len(p.Couplings) != constants.NumCouplings {
		t.Errorf("len(Couplings) = %d, want %d", len(p.Couplings), constants.NumCouplings)
	}
	if p.Gamma != constants.DefaultGamma {
		t.Errorf("Gamma = %v, want %v", p.Gamma, constants.DefaultGamma)
	}
	if p.TotalTime != constants.DefaultTotalTime {
		t.Errorf("TotalTime = %v, want %v", p.TotalTime, constants.DefaultTotalTime)
	}

	if err := p.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
}

func TestDefaultParametersIndependent(t *testing.T) {
	// Each call must return fresh slices; mutating one caller's copy must
	// not leak into another's.
	a := DefaultParameters()
	b := DefaultParameters()
	a.SiteEnergies[0] = 99
	a.Couplings[0] = 99

	if b.SiteEnergies[0] == 99 || b.Couplings[0] == 99 {
		t.Error("DefaultParameters() shares slices between calls")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Parameters)
		wantField string
	}{
		{"valid defaults", func(p *Parameters) {}, ""},
		{"zero gamma allowed", func(p *Parameters) { p.Gamma = 0 }, ""},
		{"exactly one step allowed", func(p *Parameters) { p.TotalTime = constants.DT }, ""},
		{"too few energies", func(p *Parameters) { p.SiteEnergies = p.SiteEnergies[:4] }, "epsilon"},
		{"nil energies", func(p *Parameters) { p.SiteEnergies = nil }, "epsilon"},
		{"too many couplings", func(p *Parameters) { p.Couplings = append(p.Couplings, 0.1) }, "couplings"},
		{"negative gamma", func(p *Parameters) { p.Gamma = -0.001 }, "gamma"},
		{"negative sink", func(p *Parameters) { p.SinkRate = -0.1 }, "k_sink"},
		{"negative loss", func(p *Parameters) { p.LossRate = -0.1 }, "k_loss"},
		{"sub-step horizon", func(p *Parameters) { p.TotalTime = 0.049 }, "time"},
		{"negative horizon", func(p *Parameters) { p.TotalTime = -1 }, "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "gamma", Message: "must be non-negative"}
	if got := err.Error(); got != "invalid gamma: must be non-negative" {
		t.Errorf("Error() = %q", got)
	}
}
