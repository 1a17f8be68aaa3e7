package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/excalimaid/internal/server"
	"github.com/matzehuels/excalimaid/pkg/cache"
	"github.com/matzehuels/excalimaid/pkg/observability"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		backend   string
		noCache   bool
		rateLimit float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion HTTP API",
		Long: `Serve exposes conversion over HTTP:

  POST /api/v1/convert?direction=LR   Excalidraw JSON in, conversion JSON out
  POST /api/v1/preview?format=svg     Excalidraw JSON in, Graphviz rendering out
  GET  /healthz                       liveness and version

Results are cached. The configured cache backend is used; when none is
configured the file cache under the user cache directory is used.
API requests are rate limited when server.rate_limit or --rate-limit is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.settings()

			if addr == "" {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("rate-limit") {
				rateLimit = cfg.Server.RateLimit
			}
			cc := cfg.Cache
			switch {
			case noCache:
				cc.Backend = cache.BackendNone
			case backend != "":
				cc.Backend = backend
			case cc.Backend == "" || cc.Backend == cache.BackendNone:
				cc.Backend = cache.BackendFile
			}

			runner, err := c.newRunner(ctx, cc)
			if err != nil {
				return err
			}
			defer runner.Close()
			if cfg.Server.KeyPrefix != "" {
				runner.Keyer = cache.NewScopedKeyer(nil, cfg.Server.KeyPrefix)
			}

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			printNextStep(c.Out, "Try", "curl --data-binary @diagram.excalidraw http://localhost"+portOf(addr)+"/api/v1/convert")

			srv := server.New(runner, c.Logger, server.Options{
				Addr:      addr,
				Direction: cfg.Direction,
				RateLimit: rateLimit,
				Burst:     cfg.Server.Burst,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "cache-backend", "", "cache backend: none, memory, file, redis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "API requests per second, 0 for unlimited (default from config)")

	return cmd
}

// portOf returns the ":port" suffix of a listen address, or "" when addr
// has none.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return ""
	}
	return ":" + port
}
