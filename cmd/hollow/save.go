package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hollow/internal/cli"
	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/persistence"
)

func newSaveCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Manage saved games",
		Long:  `List, inspect and remove save slots in the configured backend.`,
	}
	cmd.AddCommand(newSaveLsCmd(o), newSaveInspectCmd(o), newSaveRmCmd(o))
	return cmd
}

func newSaveLsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, closeStore, err := cli.OpenStore(o.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			keys, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list saves: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				fmt.Fprintln(out, "No saved games found.")
				return nil
			}
			fmt.Fprintln(out, "Saved games:")
			for _, k := range keys {
				fmt.Fprintln(out, "- "+k)
			}
			return nil
		},
	}
}

func newSaveInspectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [key]",
		Short: "Print a save slot as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := o.cfg.SaveKey
			if len(args) == 1 {
				key = args[0]
			}
			store, _, closeStore, err := cli.OpenStore(o.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			env, err := persistence.NewGateway(store, persistence.WithKey(key)).Inspect(cmd.Context())
			if errors.Is(err, domain.ErrSlotNotFound) {
				return fmt.Errorf("no save under %q", key)
			}
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(env, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newSaveRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [key]...",
		Short: "Remove save slots (default: the configured slot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{o.cfg.SaveKey}
			}
			store, _, closeStore, err := cli.OpenStore(o.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			var errs []error
			for _, key := range args {
				if err := store.Delete(cmd.Context(), key); err != nil {
					errs = append(errs, fmt.Errorf("remove %q: %w", key, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", key)
			}
			return errors.Join(errs...)
		},
	}
}
