package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/fusion"
	"github.com/quantbio/qemd/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved simulation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runStore, err := store.Open(cfg.Store.Dir)
			if err != nil {
				return fmt.Errorf("failed to open run store: %w", err)
			}
			defer runStore.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			records, err := runStore.ListRuns(context.Background(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"runs":  records,
					"count": len(records),
				})
			}

			if len(records) == 0 {
				fmt.Println("No saved runs. Use 'qemd simulate --save' to persist one.")
				return nil
			}

			fmt.Printf("Saved runs (%d):\n\n", len(records))
			for i, rec := range records {
				label := rec.SampleID
				if label == "" {
					label = rec.ID
				}
				fmt.Printf("%d. %s\n", i+1, label)
				fmt.Printf("   created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Printf("   ete_peak=%.3f lifetime=%.2f gamma*=%.4f score=%.3f\n",
					rec.Result.ETEPeak, rec.Result.CoherenceLifetime,
					rec.Result.GammaStar, rec.Result.CompositeScore)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 = all)")
	return cmd
}

func newCohortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cohort",
		Short: "Normalize saved runs and compute quantum health scores",
		Long: `Load every saved run, rescale coherence lifetime and gamma* relative to
the cohort, and fuse the metrics into a per-sample quantum health score.
At least two runs are needed for the normalization to be meaningful.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			runStore, err := store.Open(cfg.Store.Dir)
			if err != nil {
				return fmt.Errorf("failed to open run store: %w", err)
			}
			defer runStore.Close()

			samples, err := runStore.CohortSamples(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load cohort: %w", err)
			}

			normalized := fusion.NormalizeCohort(samples)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"samples": normalized,
					"count":   len(normalized),
				})
			}

			if len(normalized) == 0 {
				fmt.Println("No saved runs to normalize. Use 'qemd simulate --save' first.")
				return nil
			}

			fmt.Printf("Cohort (%d samples):\n\n", len(normalized))
			for _, s := range normalized {
				fmt.Printf("  %-24s QHS=%.3f  ete=%.3f  tau_norm=%.3f  gamma_norm=%.3f  R=%.3f\n",
					s.SampleID, s.QuantumHealth, s.ETEPeak, s.LifetimeNorm, s.GammaNorm, s.Resilience)
			}
			return nil
		},
	}

	return cmd
}
