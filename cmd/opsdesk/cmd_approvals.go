package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/intent"
)

func newApprovalsCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "Manage approval requests",
	}
	cmd.AddCommand(
		newApprovalsRequestCmd(logger),
		newApprovalsListCmd(logger),
		newApprovalsDecideCmd(logger, "approve", "approved"),
		newApprovalsDecideCmd(logger, "deny", "denied"),
	)
	return cmd
}

func newApprovalsRequestCmd(logger *slog.Logger) *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "request <title...>",
		Short: "Submit an approval request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")
			p := intent.ApprovalRequestPayload{Title: title, Description: title}
			if cmd.Flags().Changed("amount") {
				p.Amount = &amount
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.ApprovalRequest,
				Payload: p,
			})
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "requested amount in dollars")

	return cmd
}

func newApprovalsListCmd(logger *slog.Logger) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approval requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.ApprovalsList,
				Payload: intent.ApprovalsListPayload{Status: status},
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, approved, denied)")
	_ = cmd.RegisterFlagCompletionFunc("status",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"pending", "approved", "denied"}, cobra.ShellCompDirectiveNoFileComp
		})

	return cmd
}

func newApprovalsDecideCmd(logger *slog.Logger, verb, decision string) *cobra.Command {
	return &cobra.Command{
		Use:               verb + " <id>",
		Short:             strings.ToUpper(verb[:1]) + verb[1:] + " a pending approval",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRecordIDs("approvals"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return newExecutor(cfg, logger).Execute(cmd.Context(), &intent.Result{
				Intent:  intent.ApprovalsDecide,
				Payload: intent.ApprovalsDecidePayload{ID: args[0], Decision: decision},
			})
		},
	}
}
