package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/live/internal/errors"
	"github.com/vango-dev/live/pkg/live"
	"github.com/vango-dev/live/pkg/scenario"
)

func replayCmd() *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay a scenario",
		Long: `Replay a scenario and print every callback invocation in order.

When the scenario has an expect list, the invocations are compared with it
and a mismatch fails the command.

Examples:
  live replay hover.yaml
  live replay --json hover.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args[0], asJSON, verbose)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print invocations as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity")

	return cmd
}

func runReplay(cmd *cobra.Command, path string, asJSON, verbose bool) error {
	out := cmd.OutOrStdout()

	s, err := scenario.Load(path)
	if err != nil {
		errors.Print(cmd.ErrOrStderr(), err)
		return fmt.Errorf("cannot load %s", path)
	}

	var opts []live.Option
	if verbose {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, live.WithLogger(slog.New(handler).With("component", "live")))
	}

	res, err := scenario.Run(cmd.Context(), s, opts...)
	if err != nil {
		errors.Print(cmd.ErrOrStderr(), err)
		return fmt.Errorf("replay of %s failed", path)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Invocations); err != nil {
			return err
		}
	} else {
		for _, inv := range res.Invocations {
			info(out, "%3d  %s", inv.Step, inv)
		}
	}

	if s.Expect == nil {
		return nil
	}
	if err := res.Verify(s.Expect); err != nil {
		errors.Print(cmd.ErrOrStderr(), err)
		return fmt.Errorf("%s: invocations differ from expect", path)
	}
	if !asJSON {
		success(out, "%d invocations match expect", len(res.Invocations))
	}
	return nil
}
