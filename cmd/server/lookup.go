package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd(opts *rootOptions) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up one domain and print it with the policy applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.close()

			if !raw {
				if err := a.loadPolicyOnStart(ctx); err != nil {
					return err
				}
			}

			domain, err := a.service.LookupDomain(ctx, args[0])
			if err != nil {
				return fmt.Errorf("lookup %s: %w", args[0], err)
			}
			if err := a.service.ApplyPolicy(ctx, domain); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(domain)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "skip loading the policy and print the unredacted record")
	return cmd
}
