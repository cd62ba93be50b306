package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/soulhash/pkg/server"
	"github.com/matzehuels/soulhash/pkg/soul"
)

// serveCommand creates the serve command, which exposes hashing over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fingerprints over HTTP",
		Long: `Serve the hashers and an in-memory soul registry over HTTP.

Endpoints:
  POST /v1/hash?mode=MODE     hash the request body
  POST /v1/dual               semantic and textual hash of the body
  POST /v1/array              hash {"items": [...], "semantic": bool}
  POST /v1/souls?path=NAME    register NAME under the body's soul
  GET  /v1/souls?min=N        list soul groups
  GET  /v1/souls/HASH         list paths registered under HASH
  GET  /healthz

The registry lives for the lifetime of the process.`,
		Example: `  soulhash serve --addr :7457
  curl -s --data-binary @main.go 'localhost:7457/v1/hash?mode=dual'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(soul.New(),
				server.WithLogger(loggerFromContext(cmd.Context())),
				server.WithMaxBodySize(cfg.Server.MaxBody),
			)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:7457)")

	return cmd
}
