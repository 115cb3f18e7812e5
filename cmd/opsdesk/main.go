package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	config.LoadEnvFiles()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("opsdesk failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "opsdesk [instruction...]",
		Short: "Knowledge, approvals, and requests from your terminal",
		Long: `opsdesk manages knowledge entries, approval requests, and work requests
against a desk backend.

Run a subcommand directly, or type a plain-English instruction and opsdesk
will resolve it to the matching action:

  opsdesk store wifi password: hunter2
  opsdesk "what's the guest network name?"
  opsdesk approve abc123
`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNaturalLanguage(cmd, logger, args)
		},
	}

	root.PersistentFlags().String("config", "opsdesk.yaml", "path to config file")
	root.Flags().Bool("dry-run", false, "show the resolved action without executing it")

	root.AddCommand(
		newKnowledgeCmd(logger),
		newApprovalsCmd(logger),
		newRequestsCmd(logger),
		newStatusCmd(logger),
		newRecentCmd(logger),
		newServeCmd(logger),
		newInitCmd(),
		newCompletionCmd(),
	)

	return root
}
