package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/state"
)

func newRecentCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Show recently executed actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg, err := loadConfig(cmd); err == nil {
				state.SetHistoryDir(cfg.History.Dir)
			}

			actions, err := state.List()
			if err != nil {
				return fmt.Errorf("listing actions: %w", err)
			}

			if len(actions) == 0 {
				fmt.Println("No recent actions.")
				return nil
			}

			fmt.Printf("%-20s  %-18s  %-10s  %s\n", "WHEN", "ACTION", "RECORD", "SUMMARY")
			for _, a := range actions {
				fmt.Printf("%-20s  %-18s  %-10s  %s\n",
					a.CreatedAt.Format("2006-01-02 15:04:05"),
					a.Intent,
					a.RecordID,
					a.Summary,
				)
			}

			_ = logger // unused but kept for consistency
			return nil
		},
	}
}
