package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fiberroute/pkg/pipeline"
	"github.com/matzehuels/fiberroute/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the routing API over HTTP",
		Long: `Serve the routing API over HTTP.

Requests start from the routing defaults of the config file. Routes are
cached in the configured cache backend and saved runs go to MongoDB when
server.mongo_uri is set, else to the local run directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache, true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			c.Logger.Info("starting server", "cache", cfg.Cache.Backend, "mongo", cfg.Server.MongoURI != "")
			srv := server.New(runner, pipeline.FromConfig(cfg), c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from the config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
