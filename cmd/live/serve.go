package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/live/internal/config"
	"github.com/vango-dev/live/pkg/bridge"
	"github.com/vango-dev/live/pkg/scenario"
)

func serveCmd() *cobra.Command {
	var (
		dir          string
		address      string
		scenarioPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documents over WebSocket",
		Long: `Start the bridge server configured by live.json.

Every client gets its own document and engine. With --scenario, sessions
start from the scenario page and bindings; otherwise from bridge.page.

Examples:
  live serve
  live serve --scenario hover.yaml --addr :8000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Bridge.Address = address
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel()}))
			slog.SetDefault(logger)

			bc, err := bridge.FromConfig(cfg)
			if err != nil {
				return err
			}
			bc.Logger = logger
			if scenarioPath != "" {
				if bc.Scenario, err = scenario.Load(scenarioPath); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.OutOrStdout(), "serving ws://%s%s", bc.Address, bc.Path)
			return bridge.New(bc).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&dir, "config", "c", ".", "Directory containing live.json")
	cmd.Flags().StringVar(&address, "addr", "", "Listen address (overrides bridge.address)")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario providing the page and bindings")

	return cmd
}
