package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"rdapd/internal/lookup/cache"
	"rdapd/internal/lookup/store"
	"rdapd/internal/platform/database"
	platformredis "rdapd/internal/platform/redis"
	"rdapd/pkg/platform/tx"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := database.New(ctx, opts.cfg.Database)
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("database.url is required")
			}
			defer db.Close()
			return database.Migrate(ctx, db, opts.logger)
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample registrations into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := database.New(ctx, opts.cfg.Database)
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("database.url is required")
			}
			defer db.Close()

			domains := store.NewPostgresStore(db)
			if err := tx.RunInTx(ctx, db, func(ctx context.Context) error {
				return store.SeedSamples(ctx, domains)
			}); err != nil {
				return err
			}
			opts.logger.InfoContext(ctx, "sample registrations seeded", "count", len(store.SampleDomains()))
			return evictSeededFromCache(ctx, opts)
		},
	}
}

// evictSeededFromCache drops the seeded names from the shared Redis cache so
// running servers stop answering with the previous records.
func evictSeededFromCache(ctx context.Context, opts *rootOptions) error {
	if opts.cfg.Lookup.CacheTTL <= 0 {
		return nil
	}
	client, err := platformredis.New(ctx, opts.cfg.Redis)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}
	defer client.Close()

	redisCache := cache.NewRedisCache(client.Client, opts.cfg.Lookup.CacheTTL)
	return cache.InvalidateDomains(ctx, redisCache, store.SampleDomains())
}
