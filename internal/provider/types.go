package provider

import (
	"context"
	"time"
)

// Entry is a knowledge-base entry.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Approval is an approval request and its current decision state.
type Approval struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Amount      *float64  `json:"amount,omitempty"`
	Status      string    `json:"status"` // pending, approved, denied
	CreatedAt   time.Time `json:"created_at"`
}

// Ticket is a work request.
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"` // critical, high, medium, low
	Status      string    `json:"status"`   // open, closed
	CreatedAt   time.Time `json:"created_at"`
}

// Health reports backend liveness.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  int    `json:"uptime_seconds"`
}

// Knowledge manages knowledge-base entries.
type Knowledge interface {
	CreateEntry(ctx context.Context, title, content string) (*Entry, error)
	SearchEntries(ctx context.Context, query string) ([]Entry, error)
	ListEntries(ctx context.Context) ([]Entry, error)
}

// Approvals manages approval requests and decisions.
type Approvals interface {
	RequestApproval(ctx context.Context, title, description string, amount *float64) (*Approval, error)
	ListApprovals(ctx context.Context, status string) ([]Approval, error)
	DecideApproval(ctx context.Context, id, decision string) (*Approval, error)
}

// Requests manages work requests.
type Requests interface {
	CreateTicket(ctx context.Context, title, description, priority string) (*Ticket, error)
	ListTickets(ctx context.Context, status string) ([]Ticket, error)
}

// HealthChecker reports backend liveness.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (*Health, error)
}
