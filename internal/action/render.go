package action

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/caura-labs/opsdesk/internal/provider"
)

// Renderer writes human-readable results. Styling is dropped entirely when
// color is off so output stays pipe-friendly.
type Renderer struct {
	out io.Writer

	header  lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	dim     lipgloss.Style
	created lipgloss.Style
}

// NewRenderer returns a renderer writing to out, styled when color is true.
func NewRenderer(out io.Writer, color bool) *Renderer {
	r := &Renderer{out: out}
	if color {
		r.header = lipgloss.NewStyle().Bold(true)
		r.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		r.warn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		r.bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		r.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		r.created = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	}
	return r
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) statusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "approved", "done", "closed", "ok", "healthy":
		return r.ok
	case "pending", "open", "in_progress":
		return r.warn
	case "denied", "rejected", "failed", "unhealthy":
		return r.bad
	}
	return r.dim
}

// EntryCreated confirms a stored knowledge entry.
func (r *Renderer) EntryCreated(e *provider.Entry) {
	r.printf("%s %s (%s)\n", r.created.Render("Stored:"), e.Title, e.ID)
}

// Entries prints a knowledge entry table, or a notice when empty.
func (r *Renderer) Entries(entries []provider.Entry) {
	if len(entries) == 0 {
		r.printf("%s\n", r.dim.Render("no entries found"))
		return
	}
	r.printf("%s\n", r.header.Render(fmt.Sprintf("%-10s %-40s %s", "ID", "TITLE", "CREATED")))
	for _, e := range entries {
		created := ""
		if !e.CreatedAt.IsZero() {
			created = e.CreatedAt.Format("2006-01-02 15:04")
		}
		r.printf("%-10s %-40s %s\n", e.ID, truncate(e.Title, 40), r.dim.Render(created))
	}
}

// ApprovalCreated confirms a submitted approval request.
func (r *Renderer) ApprovalCreated(a *provider.Approval) {
	amount := ""
	if a.Amount != nil {
		amount = fmt.Sprintf(" for $%.2f", *a.Amount)
	}
	r.printf("%s %s%s (%s)\n", r.created.Render("Approval requested:"), a.Title, amount, a.ID)
}

// ApprovalDecided confirms a recorded decision.
func (r *Renderer) ApprovalDecided(a *provider.Approval) {
	r.printf("Approval %s is now %s\n", a.ID, r.statusStyle(a.Status).Render(a.Status))
}

// Approvals prints an approvals table, or a notice when empty.
func (r *Renderer) Approvals(approvals []provider.Approval) {
	if len(approvals) == 0 {
		r.printf("%s\n", r.dim.Render("no approvals found"))
		return
	}
	r.printf("%s\n", r.header.Render(fmt.Sprintf("%-10s %-36s %-10s %s", "ID", "TITLE", "AMOUNT", "STATUS")))
	for _, a := range approvals {
		amount := "-"
		if a.Amount != nil {
			amount = fmt.Sprintf("$%.2f", *a.Amount)
		}
		r.printf("%-10s %-36s %-10s %s\n", a.ID, truncate(a.Title, 36), amount, r.statusStyle(a.Status).Render(a.Status))
	}
}

// TicketCreated confirms a created request ticket.
func (r *Renderer) TicketCreated(t *provider.Ticket) {
	r.printf("%s %s [%s] (%s)\n", r.created.Render("Request created:"), t.Title, t.Priority, t.ID)
}

// Tickets prints a request ticket table, or a notice when empty.
func (r *Renderer) Tickets(tickets []provider.Ticket) {
	if len(tickets) == 0 {
		r.printf("%s\n", r.dim.Render("no requests found"))
		return
	}
	r.printf("%s\n", r.header.Render(fmt.Sprintf("%-10s %-36s %-10s %s", "ID", "TITLE", "PRIORITY", "STATUS")))
	for _, t := range tickets {
		r.printf("%-10s %-36s %-10s %s\n", t.ID, truncate(t.Title, 36), t.Priority, r.statusStyle(t.Status).Render(t.Status))
	}
}

// Health prints the backend health summary.
func (r *Renderer) Health(h *provider.Health) {
	r.printf("Backend: %s", r.statusStyle(h.Status).Render(h.Status))
	if h.Version != "" {
		r.printf(" %s", r.dim.Render("(version "+h.Version+")"))
	}
	r.printf("\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
