package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/caura-labs/opsdesk/internal/intent"
)

// runNaturalLanguage resolves a plain-English instruction to a single action
// and executes it. Resolution is a fixed rule table, so the same instruction
// always resolves the same way, entirely offline.
func runNaturalLanguage(cmd *cobra.Command, logger *slog.Logger, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	input := strings.Join(args, " ")
	logger.Info("resolving instruction", "input", input)

	result, err := intent.Route(input)
	if err != nil {
		if errors.Is(err, intent.ErrUnresolved) {
			return fmt.Errorf("could not understand %q; run 'opsdesk --help' for available commands", input)
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "=> %s\n", describeResult(result))

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exec := newExecutor(cfg, logger)
	if err := exec.Execute(cmd.Context(), result); err != nil {
		return err
	}

	cleanupHistory(cfg, logger)
	return nil
}

// describeResult renders a resolved action as the equivalent subcommand line.
func describeResult(r *intent.Result) string {
	switch p := r.Payload.(type) {
	case intent.KnowledgeCreatePayload:
		return fmt.Sprintf("opsdesk knowledge add %q %q", p.Title, p.Content)
	case intent.KnowledgeSearchPayload:
		return fmt.Sprintf("opsdesk knowledge search %q", p.Query)
	case intent.KnowledgeListPayload:
		return "opsdesk knowledge list"
	case intent.ApprovalRequestPayload:
		if p.Amount != nil {
			return fmt.Sprintf("opsdesk approvals request %q --amount %.2f", p.Title, *p.Amount)
		}
		return fmt.Sprintf("opsdesk approvals request %q", p.Title)
	case intent.ApprovalsListPayload:
		if p.Status != "" {
			return "opsdesk approvals list --status " + p.Status
		}
		return "opsdesk approvals list"
	case intent.ApprovalsDecidePayload:
		if p.Decision == "denied" {
			return "opsdesk approvals deny " + p.ID
		}
		return "opsdesk approvals approve " + p.ID
	case intent.RequestCreatePayload:
		return fmt.Sprintf("opsdesk requests create %q --priority %s", p.Title, p.Priority)
	case intent.RequestsListPayload:
		if p.Status != "" {
			return "opsdesk requests list --status " + p.Status
		}
		return "opsdesk requests list"
	case intent.StatusPayload:
		return "opsdesk status"
	}
	return string(r.Intent)
}
