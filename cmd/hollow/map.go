package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hollow/internal/cli"
	"github.com/aretw0/hollow/internal/presentation/graph"
)

func newMapCmd(o *options) *cobra.Command {
	var progress bool
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Print the scene map as a Mermaid flowchart",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := o.logger(cmd.ErrOrStderr())
			content, err := cli.ContentLoader(o.cfg, logger).Load(cmd.Context())
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if progress {
				gw, closeStore, err := cli.OpenGateway(o.cfg, logger)
				if err != nil {
					return err
				}
				defer closeStore()
				if saved := gw.Load(cmd.Context()); saved != nil {
					overlay = graph.OverlayOf(*saved)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(content, overlay))
			return nil
		},
	}
	cmd.Flags().BoolVar(&progress, "progress", false, "Highlight the scenes visited in the saved game")
	return cmd
}
