package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantbio/qemd/internal/logging"
	"github.com/quantbio/qemd/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation engine over HTTP",
		Long: `Start the HTTP front end exposing /api/simulate, /api/sweep, /api/map,
and /api/health with permissive CORS for browser clients.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}

			log := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			trace := logging.NewTraceLogger(cfg.Store.Dir, cfg.Logging.Level)
			defer trace.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return server.New(cfg.Server.Addr, log, trace).Start(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	return cmd
}
