package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tunesets/internal/adjcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the adjacency cache",
	}

	cacheCmd.AddCommand(newCacheInfoCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func withCache(cmd *cobra.Command, ctx *commandContext, fn func(*adjcache.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	store, err := adjcache.Open(cmd.Context(), cfg.Cache.Path, logger)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newCacheInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cached adjacency snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Cache.Enabled {
				fmt.Fprintln(out, "Cache: disabled (cache.enabled = false)")
			}
			return withCache(cmd, ctx, func(store *adjcache.Store) error {
				info, err := store.Info(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Path:    %s\n", info.Path)
				fmt.Fprintf(out, "Size:    %s\n", humanize.IBytes(uint64(info.SizeBytes)))
				if !info.Exists {
					fmt.Fprintln(out, "Snapshot: none (next run fetches from the catalog)")
					return nil
				}
				fmt.Fprintf(out, "Tunes:   %d\n", info.Records)
				fmt.Fprintf(out, "Saved:   %s (%s)\n", info.SavedAt.Local().Format("2006-01-02 15:04"), humanize.Time(info.SavedAt))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached snapshot so the next run fetches again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(store *adjcache.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
				return nil
			})
		},
	}
}
