package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/hollow"
	"github.com/aretw0/hollow/internal/cli"
	"github.com/aretw0/hollow/internal/presentation/tui"
)

func newPlayCmd(o *options) *cobra.Command {
	var fresh, plain bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long:  `Starts an interactive session, resuming the saved game unless --fresh is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()

			app, err := cli.Build(sigCtx, o.cfg, cli.BuildOptions{
				Logger: o.logger(cmd.ErrOrStderr()),
				Debug:  o.debug,
				Fresh:  fresh,
			})
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			render := tui.Renderer(tui.Plain)
			if !plain && isTerminal(out) {
				tui.PrintBanner(out, hollow.Version)
				if render, err = tui.NewRenderer(80); err != nil {
					return err
				}
			}

			err = cli.Play(sigCtx, app, cli.PlayOptions{
				In:           cmd.InOrStdin(),
				Out:          out,
				Render:       render,
				TickInterval: o.cfg.TickInterval,
			})
			if sigCtx.Signal() != nil {
				fmt.Fprintln(out, "\n>>> Interrupted.")
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the saved game and start over")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown even on a terminal")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
