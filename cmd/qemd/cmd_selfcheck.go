package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/engine"
	"github.com/quantbio/qemd/internal/models"
)

// selfcheckFailure marks a failed invariant without aborting the remaining
// checks.
type selfcheckFailure struct {
	name   string
	detail string
}

func newSelfcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Run the synthetic ETC7 validation scenario",
		Long: `Run a battery of physical sanity checks against the engine:
default parameters must produce in-range metrics, removing every
dissipation channel must leave efficiency near zero, and identical inputs
must produce identical outputs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var failures []selfcheckFailure

			// Baseline: defaults must land in range.
			base := models.DefaultParameters()
			res, err := engine.Simulate(base)
			if err != nil {
				return fmt.Errorf("baseline run failed: %w", err)
			}
			fmt.Printf("baseline: ete_peak=%.3f lifetime=%.2f score=%.3f resilience=%.3f\n",
				res.ETEPeak, res.CoherenceLifetime, res.CompositeScore, res.Resilience)

			if res.ETEPeak < 0 || res.ETEPeak > 1 {
				failures = append(failures, selfcheckFailure{"baseline ete_peak in [0,1]", fmt.Sprintf("got %v", res.ETEPeak)})
			}
			if res.Resilience != 1.0 {
				failures = append(failures, selfcheckFailure{"baseline resilience at reference gamma", fmt.Sprintf("got %v, want 1.0", res.Resilience)})
			}
			if res.GammaStar != base.Gamma {
				failures = append(failures, selfcheckFailure{"gamma_star echoes input", fmt.Sprintf("got %v, want %v", res.GammaStar, base.Gamma)})
			}

			// Ablation: with no sink and no loss the trace is conserved, so
			// essentially no population leaves the tracked subspace.
			closed := models.DefaultParameters()
			closed.SinkRate = 0
			closed.LossRate = 0
			closedRes, err := engine.Simulate(closed)
			if err != nil {
				return fmt.Errorf("closed-system run failed: %w", err)
			}
			fmt.Printf("closed system: ete_peak=%.3f\n", closedRes.ETEPeak)
			if closedRes.ETEPeak > 0.01 {
				failures = append(failures, selfcheckFailure{"closed system keeps population", fmt.Sprintf("ete_peak %v > 0.01", closedRes.ETEPeak)})
			}

			// Determinism: identical input, identical metrics.
			again, err := engine.Simulate(base)
			if err != nil {
				return fmt.Errorf("determinism run failed: %w", err)
			}
			again.ComputationTimeMS = res.ComputationTimeMS
			if again != res {
				failures = append(failures, selfcheckFailure{"determinism", fmt.Sprintf("%+v != %+v", again, res)})
			}

			if len(failures) > 0 {
				for _, f := range failures {
					fmt.Printf("FAIL %s: %s\n", f.name, f.detail)
				}
				return fmt.Errorf("selfcheck failed (%d checks)", len(failures))
			}

			fmt.Println("selfcheck passed")
			return nil
		},
	}
}
