package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fromsvg/svgraster/internal/server"
	"github.com/fromsvg/svgraster/pkg/cache"
	"github.com/fromsvg/svgraster/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string // listen address
	redisAddr  string // Redis address for a shared artifact cache
	noCache    bool   // disable the artifact cache entirely
	configPath string // config file path
}

// serveCommand creates the serve command that runs the rendering API.
//
// By default the server uses the same file-backed artifact cache as the
// render command. With --redis, artifacts are stored in Redis so multiple
// server instances can share them.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rendering API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("addr") && cfg.Server.Addr != "" {
				opts.addr = cfg.Server.Addr
			}
			if !flags.Changed("redis") && cfg.Server.Redis != "" {
				opts.redisAddr = cfg.Server.Redis
			}
			if cfg.Cache.Disabled {
				opts.noCache = true
			}
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared artifact cache (host:port)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	store, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	return srv.ListenAndServe(ctx, opts.addr)
}

// newServeCache picks the cache backend for the server: Redis when
// configured, otherwise the local file cache.
func (c *CLI) newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		c.Logger.Info("using redis artifact cache", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, opts.redisAddr)
	}
	return newCache(false)
}
