package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/engine"
	"github.com/quantbio/qemd/internal/logging"
	"github.com/quantbio/qemd/internal/models"
	"github.com/quantbio/qemd/internal/omics"
	"github.com/quantbio/qemd/internal/store"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one transport simulation and print the biomarker record",
		Long: `Run a single fixed-step simulation of the 7-node transport chain.

Parameters come from flags, with engine defaults filling any gaps. When
--omics points at a gene-expression table, the derived site energies and
decoherence rate take precedence over --epsilon and --gamma.

Examples:
  qemd simulate --gamma 0.02 --time 50
  qemd simulate --omics sample.csv --save --sample patient-014`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			req, err := requestFromFlags(cmd, cfg.Engine.TotalTime)
			if err != nil {
				return err
			}
			params := req.Resolve(derivedFromRequest(req))

			trace := logging.NewTraceLogger(cfg.Store.Dir, cfg.Logging.Level)
			defer trace.Close()

			res, points, err := engine.SimulateTrajectory(params)
			if err != nil {
				return err
			}
			trace.Record("cli-simulate", points)

			save, _ := cmd.Flags().GetBool("save")
			sampleID, _ := cmd.Flags().GetString("sample")
			if save {
				runStore, err := store.Open(cfg.Store.Dir)
				if err != nil {
					return fmt.Errorf("failed to open run store: %w", err)
				}
				defer runStore.Close()

				id, err := runStore.SaveRun(context.Background(), sampleID, params, res)
				if err != nil {
					return fmt.Errorf("failed to save run: %w", err)
				}
				fmt.Fprintf(os.Stderr, "saved run %s\n", id)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(res)
			}

			printResult(res)
			return nil
		},
	}

	addParameterFlags(cmd)
	cmd.Flags().Bool("save", false, "Persist the run to the local store")
	cmd.Flags().String("sample", "", "Sample identifier to attach to a saved run")

	return cmd
}

// addParameterFlags registers the physical-parameter flags shared by the
// simulate and sweep commands.
func addParameterFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Slice("epsilon", nil, "Seven site energies (comma-separated)")
	cmd.Flags().Float64("gamma", 0, "Uniform pure-dephasing rate")
	cmd.Flags().Float64Slice("couplings", nil, "Six nearest-neighbor couplings (comma-separated)")
	cmd.Flags().Float64("k-sink", 0, "Extraction rate at the sink node")
	cmd.Flags().Float64("k-loss", 0, "Non-productive loss rate at every node")
	cmd.Flags().Float64("time", 0, "Simulation horizon")
	cmd.Flags().String("omics", "", "Path to a gene,expression table")
}

// requestFromFlags builds a SimulateRequest from the command's flags. Only
// flags the user actually set are carried; defaultTime fills the horizon
// when --time is absent.
func requestFromFlags(cmd *cobra.Command, defaultTime float64) (models.SimulateRequest, error) {
	var req models.SimulateRequest

	if cmd.Flags().Changed("epsilon") {
		req.Epsilon, _ = cmd.Flags().GetFloat64Slice("epsilon")
	}
	if cmd.Flags().Changed("gamma") {
		v, _ := cmd.Flags().GetFloat64("gamma")
		req.Gamma = &v
	}
	if cmd.Flags().Changed("couplings") {
		req.Couplings, _ = cmd.Flags().GetFloat64Slice("couplings")
	}
	if cmd.Flags().Changed("k-sink") {
		v, _ := cmd.Flags().GetFloat64("k-sink")
		req.KSink = &v
	}
	if cmd.Flags().Changed("k-loss") {
		v, _ := cmd.Flags().GetFloat64("k-loss")
		req.KLoss = &v
	}
	if cmd.Flags().Changed("time") {
		v, _ := cmd.Flags().GetFloat64("time")
		req.Time = &v
	} else {
		req.Time = &defaultTime
	}

	if path, _ := cmd.Flags().GetString("omics"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return req, fmt.Errorf("failed to read omics file: %w", err)
		}
		req.OmicsData = string(data)
	}

	return req, nil
}

// derivedFromRequest maps the request's omics payload, or returns nil when
// the request carries none.
func derivedFromRequest(req models.SimulateRequest) *models.Derived {
	if req.OmicsData == "" {
		return nil
	}
	d := omics.MapRaw(req.OmicsData)
	return &d
}

func printResult(res models.Result) {
	fmt.Printf("ETE peak:            %.3f\n", res.ETEPeak)
	fmt.Printf("Coherence lifetime:  %.2f\n", res.CoherenceLifetime)
	fmt.Printf("Gamma*:              %.4f\n", res.GammaStar)
	fmt.Printf("Composite score:     %.3f\n", res.CompositeScore)
	fmt.Printf("Resilience:          %.3f\n", res.Resilience)
	fmt.Printf("Computation time:    %.2f ms\n", res.ComputationTimeMS)
}
