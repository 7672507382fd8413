package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/freehand/pkg/cache"
	"github.com/matzehuels/freehand/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact from the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cacheBackend() == config.BackendNone {
				printInfo("Caching is disabled, nothing to clear")
				return nil
			}
			n, err := c.clearCache(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached artifacts", n)
			printDetail("Backend: %s", c.cacheLocation())
			return nil
		},
	}
}

// clearCache empties the configured backend. Backends that cannot be
// enumerated report zero entries.
func (c *CLI) clearCache(ctx context.Context) (int, error) {
	if c.cacheBackend() == config.BackendNone {
		return 0, nil
	}
	ch, err := newCache(ctx, c.cfg, false)
	if err != nil {
		return 0, fmt.Errorf("open cache: %w", err)
	}
	defer ch.Close()

	clearer, ok := ch.(cache.Clearer)
	if !ok {
		return 0, nil
	}
	return clearer.Clear(ctx)
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached artifacts are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.cacheLocation())
			return nil
		},
	}
}

// cacheBackend is the effective backend after --no-cache.
func (c *CLI) cacheBackend() string {
	if c.noCache {
		return config.BackendNone
	}
	return c.cfg.Cache.Backend
}

// cacheLocation describes where the effective backend keeps its entries.
func (c *CLI) cacheLocation() string {
	cc := c.cfg.Cache
	switch c.cacheBackend() {
	case config.BackendNone:
		return "disabled"
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", cc.RedisAddr, cc.RedisDB)
	case config.BackendMongo:
		return fmt.Sprintf("mongodb %s.%s", cc.MongoDatabase, cc.MongoCollection)
	default:
		dir, err := c.cfg.CacheDir()
		if err != nil {
			return "unavailable: " + err.Error()
		}
		return dir
	}
}
