package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/hollow/internal/config"
	"github.com/aretw0/hollow/internal/logging"
)

// options is the configuration shared by every subcommand: env values with flags on top.
type options struct {
	cfg   config.Config
	debug bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "hollow",
		Short: "Eden's Hollow, a gothic point-and-click adventure",
		Long: `Play, serve or inspect Eden's Hollow. Settings come from HOLLOW_* environment
variables; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd.Flags())
		},
	}

	f := root.PersistentFlags()
	f.String("content", "", "Directory of story YAML files (default: the embedded story)")
	f.String("backend", "", "Save backend: memory, file, redis or sqlite")
	f.String("save-key", "", "Save slot key")
	f.String("save-dir", "", "Directory for the file backend")
	f.String("sqlite", "", "Database path for the sqlite backend")
	f.String("redis", "", "Redis address for the redis backend")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.Bool("log-json", false, "Log as JSON")
	f.BoolVar(&o.debug, "debug", false, "Log every engine event")

	root.AddCommand(
		newPlayCmd(o),
		newServeCmd(o),
		newValidateCmd(o),
		newMapCmd(o),
		newSaveCmd(o),
		newVersionCmd(),
	)
	return root
}

func (o *options) load(flags *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("content", &cfg.ContentDir)
	override("backend", &cfg.SaveBackend)
	override("save-key", &cfg.SaveKey)
	override("save-dir", &cfg.SaveDir)
	override("sqlite", &cfg.SQLitePath)
	override("redis", &cfg.RedisAddr)
	override("log-level", &cfg.LogLevel)
	if flags.Changed("log-json") {
		cfg.LogJSON, _ = flags.GetBool("log-json")
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.cfg = cfg
	return nil
}

func (o *options) logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithWriter(w, o.cfg.Level(), o.cfg.LogJSON)
}
