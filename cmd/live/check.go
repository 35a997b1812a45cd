package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/live/internal/errors"
	"github.com/vango-dev/live/pkg/scenario"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <scenario.yaml>...",
		Short: "Validate scenarios",
		Long: `Parse scenarios and compile every selector they use, without
replaying them.

Examples:
  live check hover.yaml
  live check scenarios/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
}

func runCheck(cmd *cobra.Command, paths []string) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	problems := 0
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			errors.Print(errOut, err)
			problems++
			continue
		}
		errs := s.Check()
		for _, err := range errs {
			errors.Print(errOut, err)
		}
		if len(errs) > 0 {
			problems += len(errs)
			continue
		}
		if s.Expect == nil {
			warn(out, "%s: ok, no expect list", path)
		} else {
			success(out, "%s: ok", path)
		}
	}
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}
