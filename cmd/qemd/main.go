package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/config"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "qemd",
		Short: "Quantum-effect mitochondrial dysfunction biomarker engine",
		Long: `qemd computes physics-derived biomarkers from a 7-node open-quantum-system
model of mitochondrial electron transport.

It simulates density-matrix evolution under coherent, dephasing, sink, and
loss dynamics, maps gene-expression tables onto model parameters, and fuses
per-run metrics into cohort-level health scores.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for machine consumption)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ~/.qemd/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newSweepCmd(),
		newMapCmd(),
		newRunsCmd(),
		newCohortCmd(),
		newSelfcheckCmd(),
		newServeCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("qemd version %s\n", version)
			}
		},
	}
}

// loadConfig resolves the effective configuration for a command invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
