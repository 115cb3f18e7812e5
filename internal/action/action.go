// Package action executes classified intents. Each intent maps to exactly
// one backend call; rendering and history recording happen here so the
// router stays free of side effects.
package action

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caura-labs/opsdesk/internal/intent"
	"github.com/caura-labs/opsdesk/internal/provider"
	"github.com/caura-labs/opsdesk/internal/state"
)

// Providers bundles the backend interfaces the executor dispatches to.
type Providers struct {
	Knowledge provider.Knowledge
	Approvals provider.Approvals
	Requests  provider.Requests
	Health    provider.HealthChecker
}

// Executor runs one backend action per classified intent.
type Executor struct {
	Providers   Providers
	Render      *Renderer
	Logger      *slog.Logger
	KeepHistory bool // record executed actions for `opsdesk recent` and completions
}

// Execute performs the single backend action for res and renders the result.
func (e *Executor) Execute(ctx context.Context, res *intent.Result) error {
	switch p := res.Payload.(type) {
	case intent.KnowledgeCreatePayload:
		entry, err := e.Providers.Knowledge.CreateEntry(ctx, p.Title, p.Content)
		if err != nil {
			return fmt.Errorf("creating entry: %w", err)
		}
		e.Render.EntryCreated(entry)
		e.record(res.Intent, "stored "+entry.Title, entry.ID)
		return nil

	case intent.KnowledgeSearchPayload:
		entries, err := e.Providers.Knowledge.SearchEntries(ctx, p.Query)
		if err != nil {
			return fmt.Errorf("searching entries: %w", err)
		}
		e.Render.Entries(entries)
		return nil

	case intent.KnowledgeListPayload:
		entries, err := e.Providers.Knowledge.ListEntries(ctx)
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}
		e.Render.Entries(entries)
		return nil

	case intent.ApprovalRequestPayload:
		approval, err := e.Providers.Approvals.RequestApproval(ctx, p.Title, p.Description, p.Amount)
		if err != nil {
			return fmt.Errorf("requesting approval: %w", err)
		}
		e.Render.ApprovalCreated(approval)
		e.record(res.Intent, "requested approval "+approval.Title, approval.ID)
		return nil

	case intent.ApprovalsListPayload:
		approvals, err := e.Providers.Approvals.ListApprovals(ctx, p.Status)
		if err != nil {
			return fmt.Errorf("listing approvals: %w", err)
		}
		e.Render.Approvals(approvals)
		return nil

	case intent.ApprovalsDecidePayload:
		approval, err := e.Providers.Approvals.DecideApproval(ctx, p.ID, p.Decision)
		if err != nil {
			return fmt.Errorf("deciding approval %s: %w", p.ID, err)
		}
		e.Render.ApprovalDecided(approval)
		e.record(res.Intent, p.Decision+" "+approval.ID, approval.ID)
		return nil

	case intent.RequestCreatePayload:
		ticket, err := e.Providers.Requests.CreateTicket(ctx, p.Title, p.Description, p.Priority)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		e.Render.TicketCreated(ticket)
		e.record(res.Intent, "created request "+ticket.Title, ticket.ID)
		return nil

	case intent.RequestsListPayload:
		tickets, err := e.Providers.Requests.ListTickets(ctx, p.Status)
		if err != nil {
			return fmt.Errorf("listing requests: %w", err)
		}
		e.Render.Tickets(tickets)
		return nil

	case intent.StatusPayload:
		health, err := e.Providers.Health.CheckHealth(ctx)
		if err != nil {
			return fmt.Errorf("checking backend health: %w", err)
		}
		e.Render.Health(health)
		return nil

	default:
		return fmt.Errorf("no action for intent %s", res.Intent)
	}
}

func (e *Executor) record(in intent.Intent, summary, recordID string) {
	if !e.KeepHistory {
		return
	}
	if err := state.New(string(in), summary, recordID).Save(); err != nil && e.Logger != nil {
		e.Logger.Warn("recording action history failed", "error", err)
	}
}
