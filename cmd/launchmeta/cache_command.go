package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"launchmeta/internal/catalog/respcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached remote catalog responses",
	}
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	return cacheCmd
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove cached responses older than mobygames.cache_ttl_hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}
			store, err := respcache.Open(cfg.ResponseCachePath(), cfg.CacheTTL())
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d cached response(s) from %s\n", removed, store.Path())
			return nil
		},
	}
}
