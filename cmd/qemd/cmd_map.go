package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/omics"
)

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map <omics-file>",
		Short: "Map a gene-expression table to model parameters",
		Long: `Parse a two-column gene,expression table (first record is a header)
and print the derived site energies and decoherence rate without running a
simulation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read omics file: %w", err)
			}

			derived := omics.MapRaw(string(data))

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(derived)
			}

			fmt.Println("Derived parameters:")
			for i, e := range derived.SiteEnergies {
				fmt.Printf("  epsilon[%d] = %.4f\n", i, e)
			}
			fmt.Printf("  gamma      = %.4f\n", derived.Gamma)
			return nil
		},
	}

	return cmd
}
