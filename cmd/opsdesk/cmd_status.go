package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/intent"
)

func newStatusCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.Status,
				Payload: intent.StatusPayload{},
			})
		},
	}
}
