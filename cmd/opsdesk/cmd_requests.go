package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/intent"
)

func newRequestsCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Manage work requests",
	}
	cmd.AddCommand(
		newRequestsCreateCmd(logger),
		newRequestsListCmd(logger),
	)
	return cmd
}

func newRequestsCreateCmd(logger *slog.Logger) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "create <title...>",
		Short: "Create a work request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch priority {
			case "critical", "high", "medium", "low":
			default:
				return fmt.Errorf("invalid priority %q; valid: critical, high, medium, low", priority)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent: intent.RequestCreate,
				Payload: intent.RequestCreatePayload{
					Title:       title,
					Description: title,
					Priority:    priority,
				},
			})
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "medium", "priority (critical, high, medium, low)")
	_ = cmd.RegisterFlagCompletionFunc("priority",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"critical", "high", "medium", "low"}, cobra.ShellCompDirectiveNoFileComp
		})

	return cmd
}

func newRequestsListCmd(logger *slog.Logger) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.RequestsList,
				Payload: intent.RequestsListPayload{Status: status},
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (open, closed)")
	_ = cmd.RegisterFlagCompletionFunc("status",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"open", "closed"}, cobra.ShellCompDirectiveNoFileComp
		})

	return cmd
}
