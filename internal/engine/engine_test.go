package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/quantbio/qemd/internal/constants"
	"github.com/quantbio/qemd/internal/models"
)

const floatTol = 1e-9

func validParams() models.Parameters {
	return models.DefaultParameters()
}

func TestSimulateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Parameters)
		field  string
	}{
		{
			name:   "six site energies",
			mutate: func(p *models.Parameters) { p.SiteEnergies = p.SiteEnergies[:6] },
			field:  "epsilon",
		},
		{
			name:   "eight site energies",
			mutate: func(p *models.Parameters) { p.SiteEnergies = append(p.SiteEnergies, 0.3) },
			field:  "epsilon",
		},
		{
			name:   "five couplings",
			mutate: func(p *models.Parameters) { p.Couplings = p.Couplings[:5] },
			field:  "couplings",
		},
		{
			name:   "negative gamma",
			mutate: func(p *models.Parameters) { p.Gamma = -0.01 },
			field:  "gamma",
		},
		{
			name:   "negative sink rate",
			mutate: func(p *models.Parameters) { p.SinkRate = -1 },
			field:  "k_sink",
		},
		{
			name:   "negative loss rate",
			mutate: func(p *models.Parameters) { p.LossRate = -1 },
			field:  "k_loss",
		},
		{
			name:   "horizon below one step",
			mutate: func(p *models.Parameters) { p.TotalTime = 0.01 },
			field:  "time",
		},
		{
			name:   "zero horizon",
			mutate: func(p *models.Parameters) { p.TotalTime = 0 },
			field:  "time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, err := Simulate(p)
			if err == nil {
				t.Fatal("Simulate() expected validation error, got nil")
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Simulate() error = %v, want *models.ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestSimulateDefaults(t *testing.T) {
	res, err := Simulate(validParams())
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	if !res.Verified {
		t.Error("Verified = false, want true on normal completion")
	}
	if res.ETEPeak < 0 || res.ETEPeak > 1 {
		t.Errorf("ETEPeak = %v, want in [0, 1]", res.ETEPeak)
	}
	if res.CompositeScore < 0 || res.CompositeScore > 1.05 {
		t.Errorf("CompositeScore = %v, want approximately in [0, 1]", res.CompositeScore)
	}
	// At the reference decoherence rate the proximity heuristic is exact.
	if res.Resilience != 1.0 {
		t.Errorf("Resilience = %v, want 1.0 at gamma = 0.03", res.Resilience)
	}
	if res.GammaStar != validParams().Gamma {
		t.Errorf("GammaStar = %v, want input gamma %v", res.GammaStar, validParams().Gamma)
	}
}

func TestSimulateStepCount(t *testing.T) {
	// total_time=50 at dt=0.05 must integrate exactly 1000 steps.
	raw := integrate(validParams(), nil)
	if raw.steps != 1000 {
		t.Errorf("steps = %d, want 1000", raw.steps)
	}
}

func TestGammaStarEchoesInput(t *testing.T) {
	tests := []struct {
		name  string
		gamma float64
		want  float64
	}{
		{"default", 0.03, 0.03},
		{"rounded to four decimals", 0.0123456, 0.0123},
		{"zero dephasing", 0, 0},
		{"high dephasing", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			p.Gamma = tt.gamma
			res, err := Simulate(p)
			if err != nil {
				t.Fatalf("Simulate() error = %v", err)
			}
			if res.GammaStar != tt.want {
				t.Errorf("GammaStar = %v, want %v", res.GammaStar, tt.want)
			}
		})
	}
}

func TestSimulateDeterminism(t *testing.T) {
	p := validParams()
	first, err := Simulate(p)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	second, err := Simulate(p)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	// Everything except wall-clock time must be bit-identical.
	second.ComputationTimeMS = first.ComputationTimeMS
	if first != second {
		t.Errorf("repeated run differs: %+v vs %+v", first, second)
	}
}

func TestSimulateNoValidationNoAllocation(t *testing.T) {
	// A failing run must report the error before any integration work;
	// the observer must never fire.
	p := validParams()
	p.SiteEnergies = p.SiteEnergies[:3]

	called := false
	_, err := simulate(p, func(int, float64, float64, float64, float64) { called = true })
	if err == nil {
		t.Fatal("simulate() expected error")
	}
	if called {
		t.Error("observer fired on a run that failed validation")
	}
}

func TestSimulateTrajectoryInvalidInput(t *testing.T) {
	// Invalid horizons must fail with a validation error, never a panic
	// from sizing the sample buffer.
	tests := []struct {
		name   string
		mutate func(*models.Parameters)
		field  string
	}{
		{
			name:   "negative horizon",
			mutate: func(p *models.Parameters) { p.TotalTime = -5 },
			field:  "time",
		},
		{
			name:   "sub-step horizon",
			mutate: func(p *models.Parameters) { p.TotalTime = 0.01 },
			field:  "time",
		},
		{
			name:   "wrong epsilon length",
			mutate: func(p *models.Parameters) { p.SiteEnergies = p.SiteEnergies[:2] },
			field:  "epsilon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, points, err := SimulateTrajectory(p)
			if err == nil {
				t.Fatal("SimulateTrajectory() expected validation error, got nil")
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("SimulateTrajectory() error = %v, want *models.ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.field)
			}
			if points != nil {
				t.Errorf("points = %v, want nil on failed run", points)
			}
		})
	}
}

func TestSimulateTrajectory(t *testing.T) {
	p := validParams()
	p.TotalTime = 1.0 // 20 steps

	res, points, err := SimulateTrajectory(p)
	if err != nil {
		t.Fatalf("SimulateTrajectory() error = %v", err)
	}
	if len(points) != 20 {
		t.Fatalf("len(points) = %d, want 20", len(points))
	}
	if !res.Verified {
		t.Error("Verified = false, want true")
	}

	// Sampled times advance by exactly one step.
	for i, pt := range points {
		want := float64(i+1) * constants.DT
		if math.Abs(pt.Time-want) > floatTol {
			t.Errorf("points[%d].Time = %v, want %v", i, pt.Time, want)
		}
	}

	// With nonzero sink and loss, population steadily leaks out.
	last := points[len(points)-1]
	if last.Efficiency <= 0 {
		t.Errorf("final efficiency = %v, want > 0 with open channels", last.Efficiency)
	}
}

func TestClosedSystemConservesTrace(t *testing.T) {
	// With no sink and no loss, the commutator and dephasing terms conserve
	// the trace, so essentially no population leaves the tracked subspace.
	p := validParams()
	p.SinkRate = 0
	p.LossRate = 0

	raw := integrate(p, nil)
	if raw.etePeak > 1e-9 {
		t.Errorf("etePeak = %v, want ~0 for a closed system", raw.etePeak)
	}
}

func TestFinalizeRounding(t *testing.T) {
	raw := rawMetrics{
		etePeak:       0.6234567,
		eteAverage:    0.3,
		coherenceMean: 0.0123456,
		gamma:         0.0212345,
		steps:         1000,
	}
	res := finalize(raw)

	if res.ETEPeak != 0.623 {
		t.Errorf("ETEPeak = %v, want 0.623", res.ETEPeak)
	}
	if res.GammaStar != 0.0212 {
		t.Errorf("GammaStar = %v, want 0.0212", res.GammaStar)
	}
	if res.CoherenceLifetime != 1.23 {
		t.Errorf("CoherenceLifetime = %v, want 1.23", res.CoherenceLifetime)
	}

	wantComposite := round(0.5*raw.etePeak+0.3/(1.0+raw.gamma*50)+0.2*raw.coherenceMean, 3)
	if res.CompositeScore != wantComposite {
		t.Errorf("CompositeScore = %v, want %v", res.CompositeScore, wantComposite)
	}
}

func TestResilienceHeuristic(t *testing.T) {
	tests := []struct {
		name  string
		gamma float64
		want  float64
	}{
		{"at reference", 0.03, 1.0},
		{"one half-width above", 0.08, 0.0},
		{"far above reference", 0.5, 0.0},
		{"halfway below", 0.005, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := finalize(rawMetrics{gamma: tt.gamma, steps: 1})
			if math.Abs(res.Resilience-tt.want) > floatTol {
				t.Errorf("Resilience = %v, want %v", res.Resilience, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		places int
		want   float64
	}{
		{"three places down", 0.1234, 3, 0.123},
		{"three places up", 0.1236, 3, 0.124},
		{"half away from zero", 0.0015, 3, 0.002},
		{"negative", -0.1235, 3, -0.124},
		{"two places", 12.345, 2, 12.35},
		{"four places", 0.00004, 4, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := round(tt.v, tt.places); got != tt.want {
				t.Errorf("round(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
			}
		})
	}
}
