package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hollow/internal/cli"
	"github.com/aretw0/hollow/internal/validator"
)

func newValidateCmd(o *options) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the story for broken references",
		Long: `Loads the story and reports dangling exits, unknown dialogs, puzzles and items,
bad dialog jumps, incomplete puzzles and scenes unreachable from the start.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := cli.ContentLoader(o.cfg, o.logger(cmd.ErrOrStderr())).Load(cmd.Context())
			if err != nil {
				return err
			}
			report := validator.Validate(content)
			out := cmd.OutOrStdout()
			for _, p := range report.Problems {
				fmt.Fprintln(out, p.String())
			}
			if err := report.Err(); err != nil {
				return err
			}
			if strict && len(report.Warnings()) > 0 {
				return fmt.Errorf("found %d warnings", len(report.Warnings()))
			}
			fmt.Fprintf(out, "%s is valid ✅ (%d scenes, %d dialogs, %d puzzles, %d items)\n",
				content.Game.Title, len(content.Scenes), len(content.Dialogs), len(content.Puzzles), len(content.Items))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	return cmd
}
