package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"molvec/config"
	"molvec/internal/adapter/cache"
	"molvec/internal/port"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the descriptor cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts per namespace",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCache()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, ns := range []string{port.NamespaceGeometry, port.NamespaceDescriptors, port.NamespaceShingles} {
			n, err := store.Count(ns)
			if err != nil {
				return err
			}
			fmt.Printf("  %-12s %d entries\n", ns, n)
		}
		fmt.Printf("\nCache database: %s\n", config.CacheDBPath(cfg.CacheDir))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [namespace]",
	Short: "Remove cached entries (all namespaces, or one of geometry, descriptors, shingles)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCache()
		if err != nil {
			return err
		}
		defer store.Close()

		targets := []string{port.NamespaceGeometry, port.NamespaceDescriptors, port.NamespaceShingles}
		if len(args) == 1 {
			targets = []string{args[0]}
		}
		for _, ns := range targets {
			if err := store.Clear(ns); err != nil {
				return fmt.Errorf("failed to clear %s: %w", ns, err)
			}
			fmt.Printf("Cleared namespace %s\n", ns)
		}
		return nil
	},
}

func openCache() (*cache.BoltCache, error) {
	if err := config.EnsureCacheDir(cfg.CacheDir); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	store, err := cache.NewBoltCache(config.CacheDBPath(cfg.CacheDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
