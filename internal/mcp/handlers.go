package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quantbio/qemd/internal/engine"
	"github.com/quantbio/qemd/internal/models"
	"github.com/quantbio/qemd/internal/omics"
)

// registerTools registers all qemd MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qemd_simulate",
		Description: "Run one transport simulation and return the biomarker record (peak efficiency, coherence lifetime, composite score, resilience)",
	}, s.handleSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qemd_sweep",
		Description: "Sweep the decoherence rate across the ENAQT grid and return the curve plus the efficiency-maximizing gamma",
	}, s.handleSweep)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "qemd_map_omics",
		Description: "Map a gene-expression table to model parameters (site energies and decoherence rate)",
	}, s.handleMapOmics)
}

// handleSimulate implements the qemd_simulate tool.
func (s *Server) handleSimulate(ctx context.Context, req *sdk.CallToolRequest, args SimulateInput) (*sdk.CallToolResult, SimulateOutput, error) {
	res, err := engine.Simulate(resolveInput(args))
	if err != nil {
		return nil, SimulateOutput{}, err
	}
	return nil, SimulateOutput{Result: res}, nil
}

// handleSweep implements the qemd_sweep tool. It accepts the same input as
// qemd_simulate; the gamma field only seeds the non-swept baseline.
func (s *Server) handleSweep(ctx context.Context, req *sdk.CallToolRequest, args SimulateInput) (*sdk.CallToolResult, SweepOutput, error) {
	curve, err := engine.Sweep(resolveInput(args), nil)
	if err != nil {
		return nil, SweepOutput{}, err
	}
	gammaStar, etePeak := engine.FindGammaStar(curve)
	return nil, SweepOutput{Curve: curve, GammaStar: gammaStar, ETEPeak: etePeak}, nil
}

// handleMapOmics implements the qemd_map_omics tool.
func (s *Server) handleMapOmics(ctx context.Context, req *sdk.CallToolRequest, args MapOmicsInput) (*sdk.CallToolResult, MapOmicsOutput, error) {
	derived := omics.MapRaw(args.OmicsData)
	return nil, MapOmicsOutput{Epsilon: derived.SiteEnergies, Gamma: derived.Gamma}, nil
}

// resolveInput merges a tool input with defaults and omics-derived values
// under the same precedence rule as the HTTP transport.
func resolveInput(args SimulateInput) models.Parameters {
	req := models.SimulateRequest{
		Epsilon:   args.Epsilon,
		Gamma:     args.Gamma,
		Couplings: args.Couplings,
		KSink:     args.KSink,
		KLoss:     args.KLoss,
		Time:      args.Time,
		OmicsData: args.OmicsData,
	}

	var derived *models.Derived
	if req.OmicsData != "" {
		d := omics.MapRaw(req.OmicsData)
		derived = &d
	}
	return req.Resolve(derived)
}
