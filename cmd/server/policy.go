package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"rdapd/internal/lookup/handler"
	"rdapd/internal/platform/database"
	platformredis "rdapd/internal/platform/redis"
	"rdapd/internal/policy"
)

func newPolicyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the privacy policy or announce changes to running servers",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Load the configured policy source and print it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				db, err := database.New(ctx, opts.cfg.Database)
				if err != nil {
					return err
				}
				if db != nil {
					defer db.Close()
				}
				source, err := policySource(opts.cfg, db)
				if err != nil {
					return err
				}
				reg, err := policy.NewRegistry(source, policy.WithLogger(opts.logger))
				if err != nil {
					return err
				}
				if err := reg.Load(ctx); err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(handler.FromSnapshot(reg.Current()))
			},
		},
		newAnnounceCmd(opts, "reload", "Tell running servers to reload the policy", policy.ActionReload),
		newAnnounceCmd(opts, "clear", "Tell running servers to drop the policy", policy.ActionClear),
	)
	return cmd
}

func newAnnounceCmd(opts *rootOptions, use, short string, action policy.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client, err := platformredis.New(ctx, opts.cfg.Redis)
			if err != nil {
				return err
			}
			if client == nil {
				return errors.New("redis.url is required to announce policy changes")
			}
			defer client.Close()

			b := policy.NewBroadcaster(client.Client, opts.cfg.Policy.Channel, opts.logger)
			if err := b.Publish(ctx, action); err != nil {
				return err
			}
			opts.logger.InfoContext(ctx, "policy change announced", "action", action, "channel", opts.cfg.Policy.Channel)
			return nil
		},
	}
}
