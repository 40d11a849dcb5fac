package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rdapd/internal/platform/config"
	"rdapd/internal/platform/logger"
)

// rootOptions is shared by every subcommand; PersistentPreRunE fills cfg and
// logger before a subcommand runs.
type rootOptions struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "rdapd",
		Short:         "RDAP domain lookup service with a field-level privacy policy",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (YAML); RDAP_* environment variables override it")

	root.AddCommand(
		newServeCmd(opts),
		newLookupCmd(opts),
		newPolicyCmd(opts),
		newMigrateCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("rdapd failed", "error", err)
		os.Exit(1)
	}
}
