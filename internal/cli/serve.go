package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cardstack/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP frame service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve frames over HTTP",
		Long: `Serve frames over HTTP.

Endpoints:
  GET /healthz
  GET /v1/frame?offset=&width=&height=&items=
  GET /v1/frame.svg?offset=&style=
  GET /v1/render?format=&from=&to=&steps=
  GET /v1/page?offset=&width=
  GET /v1/pages/{page}/offset?width=&items=

Layout parameters (spacing, max_visible, scale_factor, policy, item_width,
item_height) override the configured layout per request. Set
cache.redis_url in the config file to share a cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			vp, err := cfg.Viewport.Viewport(0)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, server.Options{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
				Layout:       cfg.Layout,
				Viewport:     vp,
				Style:        cfg.Render.Style,
			}, c.Logger)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
