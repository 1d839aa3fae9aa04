package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRequestFromFlags(t *testing.T) {
	cmd := newSimulateCmd()
	if err := cmd.Flags().Set("gamma", "0.01"); err != nil {
		t.Fatalf("setting gamma: %v", err)
	}
	if err := cmd.Flags().Set("epsilon", "0.1,0.2,0.3,0.4,0.5,0.6,0.7"); err != nil {
		t.Fatalf("setting epsilon: %v", err)
	}

	req, err := requestFromFlags(cmd, 50)
	if err != nil {
		t.Fatalf("requestFromFlags() error = %v", err)
	}

	if req.Gamma == nil || *req.Gamma != 0.01 {
		t.Errorf("Gamma = %v, want 0.01", req.Gamma)
	}
	if len(req.Epsilon) != 7 || req.Epsilon[6] != 0.7 {
		t.Errorf("Epsilon = %v", req.Epsilon)
	}
	// Unset flags stay absent so defaults apply downstream.
	if req.KSink != nil || req.KLoss != nil || req.Couplings != nil {
		t.Errorf("unset flags leaked into request: %+v", req)
	}
	// The horizon always carries the configured default when --time is unset.
	if req.Time == nil || *req.Time != 50 {
		t.Errorf("Time = %v, want configured default 50", req.Time)
	}
}

func TestRequestFromFlagsExplicitTime(t *testing.T) {
	cmd := newSimulateCmd()
	if err := cmd.Flags().Set("time", "10"); err != nil {
		t.Fatalf("setting time: %v", err)
	}

	req, err := requestFromFlags(cmd, 50)
	if err != nil {
		t.Fatalf("requestFromFlags() error = %v", err)
	}
	if req.Time == nil || *req.Time != 10 {
		t.Errorf("Time = %v, want explicit 10", req.Time)
	}
}

func TestRequestFromFlagsOmicsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := os.WriteFile(path, []byte("gene,expr\nNDUFS1,2.0\n"), 0600); err != nil {
		t.Fatalf("writing omics file: %v", err)
	}

	cmd := newSimulateCmd()
	if err := cmd.Flags().Set("omics", path); err != nil {
		t.Fatalf("setting omics: %v", err)
	}

	req, err := requestFromFlags(cmd, 50)
	if err != nil {
		t.Fatalf("requestFromFlags() error = %v", err)
	}
	if req.OmicsData == "" {
		t.Error("OmicsData empty, want file contents")
	}

	derived := derivedFromRequest(req)
	if derived == nil {
		t.Fatal("derivedFromRequest() = nil, want derived values")
	}
	if derived.SiteEnergies[0] >= 0.5 {
		t.Errorf("derived epsilon[0] = %v, want below baseline", derived.SiteEnergies[0])
	}
}

func TestRequestFromFlagsMissingOmicsFile(t *testing.T) {
	cmd := newSimulateCmd()
	if err := cmd.Flags().Set("omics", filepath.Join(t.TempDir(), "missing.csv")); err != nil {
		t.Fatalf("setting omics: %v", err)
	}

	if _, err := requestFromFlags(cmd, 50); err == nil {
		t.Error("requestFromFlags() with missing omics file, want error")
	}
}
