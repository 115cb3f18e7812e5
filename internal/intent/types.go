package intent

import "errors"

// Intent is the closed set of instruction classifications.
type Intent string

const (
	KnowledgeCreate Intent = "knowledge.create"
	KnowledgeSearch Intent = "knowledge.search"
	KnowledgeList   Intent = "knowledge.list"
	ApprovalRequest Intent = "approvals.request"
	ApprovalsList   Intent = "approvals.list"
	ApprovalsDecide Intent = "approvals.decide"
	RequestCreate   Intent = "requests.create"
	RequestsList    Intent = "requests.list"
	Status          Intent = "status"
	Unknown         Intent = "unknown"
)

// ErrUnresolved indicates no rule matched and the fallback also declined.
// It is the router's only failure mode; callers must not execute any action.
var ErrUnresolved = errors.New("could not understand the instruction")

// Payload carries the typed fields extracted for one intent.
type Payload interface {
	payload()
}

// KnowledgeCreatePayload holds the title and content of a new knowledge entry.
type KnowledgeCreatePayload struct {
	Title   string
	Content string
}

// KnowledgeSearchPayload holds the query for a knowledge search.
type KnowledgeSearchPayload struct {
	Query string
}

// KnowledgeListPayload has no fields; listing takes no parameters.
type KnowledgeListPayload struct{}

// ApprovalRequestPayload holds a new approval request.
// Amount is nil when the instruction carried no currency amount.
type ApprovalRequestPayload struct {
	Title       string
	Description string
	Amount      *float64
}

// ApprovalsListPayload filters the approval listing.
// Status is "pending" or empty (all statuses).
type ApprovalsListPayload struct {
	Status string
}

// ApprovalsDecidePayload identifies an approval and the decision taken on it.
// Decision is "approved" or "denied".
type ApprovalsDecidePayload struct {
	ID       string
	Decision string
}

// RequestCreatePayload holds a new work request.
// Priority is one of "critical", "high", "medium", "low".
type RequestCreatePayload struct {
	Title       string
	Description string
	Priority    string
}

// RequestsListPayload filters the request listing.
// Status is "open" or empty (all statuses).
type RequestsListPayload struct {
	Status string
}

// StatusPayload has no fields.
type StatusPayload struct{}

func (KnowledgeCreatePayload) payload() {}
func (KnowledgeSearchPayload) payload() {}
func (KnowledgeListPayload) payload()   {}
func (ApprovalRequestPayload) payload() {}
func (ApprovalsListPayload) payload()   {}
func (ApprovalsDecidePayload) payload() {}
func (RequestCreatePayload) payload()   {}
func (RequestsListPayload) payload()    {}
func (StatusPayload) payload()          {}

// Result is a classified instruction: an intent plus its extracted payload.
type Result struct {
	Intent  Intent
	Payload Payload
}
