package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/engine"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep the decoherence rate and report the ENAQT optimum",
		Long: `Re-run the simulation across a grid of decoherence rates, holding the
other parameters fixed, and report the rate that maximizes peak transfer
efficiency. This is the operation that computes a real gamma*; a single
simulate run only echoes its input rate.`,
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

			curve, err := engine.Sweep(params, nil)
			if err != nil {
				return err
			}
			gammaStar, etePeak := engine.FindGammaStar(curve)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"curve":      curve,
					"gamma_star": gammaStar,
					"ete_peak":   etePeak,
				})
			}

			fmt.Printf("ENAQT sweep (%d points):\n\n", len(curve))
			for _, pt := range curve {
				marker := " "
				if pt.Gamma == gammaStar {
					marker = "*"
				}
				fmt.Printf("  %s gamma=%.4f  ete_peak=%.3f\n", marker, pt.Gamma, pt.ETEPeak)
			}
			fmt.Printf("\ngamma* = %.4f (ete_peak %.3f)\n", gammaStar, etePeak)
			return nil
		},
	}

	addParameterFlags(cmd)
	return cmd
}
