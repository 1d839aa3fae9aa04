package mcp

import (
	"context"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestResolveInputDefaults(t *testing.T) {
	p := resolveInput(SimulateInput{})

	if len(p.SiteEnergies) != 7 || len(p.Couplings) != 6 {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.Gamma != 0.03 || p.TotalTime != 50 {
		t.Errorf("default gamma/time = %v/%v, want 0.03/50", p.Gamma, p.TotalTime)
	}
}

func TestResolveInputOmicsPrecedence(t *testing.T) {
	args := SimulateInput{
		Gamma:     floatPtr(0.2),
		OmicsData: "gene,expr\nHIF1A,4.0\nNFE2L2,4.0\nSOD2,4.0\nCAT,4.0",
	}

	p := resolveInput(args)
	if p.Gamma != 0.06 {
		t.Errorf("Gamma = %v, want omics-derived 0.06", p.Gamma)
	}
}

func TestHandleSimulate(t *testing.T) {
	s := NewServer(&Config{Name: "qemd", Version: "test"})

	_, out, err := s.handleSimulate(context.Background(), nil, SimulateInput{Time: floatPtr(5)})
	if err != nil {
		t.Fatalf("handleSimulate() error = %v", err)
	}
	if !out.Result.Verified {
		t.Error("Verified = false, want true")
	}
	if out.Result.ETEPeak < 0 || out.Result.ETEPeak > 1 {
		t.Errorf("ETEPeak = %v, want in [0, 1]", out.Result.ETEPeak)
	}
}

func TestHandleSimulateValidation(t *testing.T) {
	s := NewServer(&Config{Name: "qemd", Version: "test"})

	_, _, err := s.handleSimulate(context.Background(), nil, SimulateInput{
		Epsilon: []float64{0.1, 0.2},
	})
	if err == nil {
		t.Fatal("handleSimulate() expected validation error")
	}
}

func TestHandleSweep(t *testing.T) {
	s := NewServer(&Config{Name: "qemd", Version: "test"})

	_, out, err := s.handleSweep(context.Background(), nil, SimulateInput{Time: floatPtr(5)})
	if err != nil {
		t.Fatalf("handleSweep() error = %v", err)
	}
	if len(out.Curve) != 20 {
		t.Fatalf("len(curve) = %d, want 20", len(out.Curve))
	}
	if out.GammaStar < 0.005 || out.GammaStar > 0.05 {
		t.Errorf("gamma_star = %v, want inside sweep grid", out.GammaStar)
	}
}

func TestHandleMapOmics(t *testing.T) {
	s := NewServer(&Config{Name: "qemd", Version: "test"})

	_, out, err := s.handleMapOmics(context.Background(), nil, MapOmicsInput{
		OmicsData: "gene,expr\nNDUFS1,3.0",
	})
	if err != nil {
		t.Fatalf("handleMapOmics() error = %v", err)
	}
	if len(out.Epsilon) != 7 {
		t.Fatalf("len(epsilon) = %d, want 7", len(out.Epsilon))
	}
	if out.Epsilon[0] >= 0.5 {
		t.Errorf("epsilon[0] = %v, want below baseline", out.Epsilon[0])
	}
	if out.Gamma != 0.02 {
		t.Errorf("gamma = %v, want 0.02", out.Gamma)
	}
}
