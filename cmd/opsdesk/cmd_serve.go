package main

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/server"
)

func newServeCmd(logger *slog.Logger) *cobra.Command {
	var port int
	var dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the built-in development backend",
		Long: `Run a local backend serving the same HTTP API the CLI expects from a
production deployment. Records persist as YAML files under the data
directory; clients can follow changes via the /api/events stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			srv := server.New(port, dataDir, version, logger)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP server port")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".opsdesk/serve", "path to record storage directory")

	return cmd
}
