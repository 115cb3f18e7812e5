package intent

import (
	"strings"
	"testing"
)

func TestExtractKnowledgeCreate_ColonSplit(t *testing.T) {
	p := extractKnowledgeCreate("store our refund policy: full refund within 30 days").(KnowledgeCreatePayload)
	if p.Title != "refund policy" {
		t.Fatalf("unexpected title: %q", p.Title)
	}
	if p.Content != "full refund within 30 days" {
		t.Fatalf("unexpected content: %q", p.Content)
	}
}

func TestExtractKnowledgeCreate_NoColon(t *testing.T) {
	p := extractKnowledgeCreate("remember vendor invoices go to accounts payable first").(KnowledgeCreatePayload)
	if p.Title != "vendor invoices go to accounts" {
		t.Fatalf("expected first five words as title, got %q", p.Title)
	}
	if p.Content != "vendor invoices go to accounts payable first" {
		t.Fatalf("unexpected content: %q", p.Content)
	}
}

func TestExtractKnowledgeCreate_EmptyRemainder(t *testing.T) {
	p := extractKnowledgeCreate("store this").(KnowledgeCreatePayload)
	if p.Title != "New Entry" {
		t.Fatalf("expected placeholder title, got %q", p.Title)
	}
	if p.Content != "store this" {
		t.Fatalf("expected full input as content, got %q", p.Content)
	}
}

func TestExtractKnowledgeSearch(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"what's our escalation protocol?", "escalation protocol"},
		{"how do I reset the router", "I reset the router"},
		{"find the onboarding checklist", "onboarding checklist"},
		{"tell me about the travel policy", "travel policy"},
		{"search for expense limits", "expense limits"},
	}
	for _, tc := range cases {
		p := extractKnowledgeSearch(tc.input).(KnowledgeSearchPayload)
		if p.Query != tc.want {
			t.Fatalf("extractKnowledgeSearch(%q) = %q, want %q", tc.input, p.Query, tc.want)
		}
	}
}

func TestExtractKnowledgeSearch_ShortRemainderFallsBack(t *testing.T) {
	// Stripping leaves under two characters; return the input minus "?".
	p := extractKnowledgeSearch("what is a?").(KnowledgeSearchPayload)
	if p.Query != "what is a" {
		t.Fatalf("unexpected query: %q", p.Query)
	}
}

func TestExtractApprovalRequest_Amount(t *testing.T) {
	p := extractApprovalRequest("request approval for $5,000 vendor payment").(ApprovalRequestPayload)
	if p.Amount == nil || *p.Amount != 5000 {
		t.Fatalf("unexpected amount: %v", p.Amount)
	}
	if !strings.Contains(p.Title, "vendor payment") {
		t.Fatalf("title should contain item, got %q", p.Title)
	}
	if p.Description != "request approval for $5,000 vendor payment" {
		t.Fatalf("description must be the full input, got %q", p.Description)
	}
}

func TestExtractApprovalRequest_Cents(t *testing.T) {
	p := extractApprovalRequest("need approval for $49.99 software license").(ApprovalRequestPayload)
	if p.Amount == nil || *p.Amount != 49.99 {
		t.Fatalf("unexpected amount: %v", p.Amount)
	}
}

func TestExtractApprovalRequest_NoAmount(t *testing.T) {
	p := extractApprovalRequest("i need approval to attend the conference").(ApprovalRequestPayload)
	if p.Amount != nil {
		t.Fatalf("expected nil amount, got %v", *p.Amount)
	}
	if !strings.Contains(p.Title, "attend the conference") {
		t.Fatalf("unexpected title: %q", p.Title)
	}
}

func TestExtractApprovalRequest_DefaultTitle(t *testing.T) {
	p := extractApprovalRequest("request approval").(ApprovalRequestPayload)
	if p.Title != "Approval Request" {
		t.Fatalf("expected default title, got %q", p.Title)
	}
}

func TestExtractApprovalsDecide(t *testing.T) {
	cases := []struct {
		input    string
		id       string
		decision string
	}{
		{"approve abc123", "abc123", "approved"},
		{"deny REQ-42", "REQ-42", "denied"},
		{"reject 9f3b", "9f3b", "denied"},
	}
	for _, tc := range cases {
		p := extractApprovalsDecide(tc.input).(ApprovalsDecidePayload)
		if p.ID != tc.id || p.Decision != tc.decision {
			t.Fatalf("extractApprovalsDecide(%q) = %+v", tc.input, p)
		}
	}
}

func TestExtractRequestCreate_PriorityInference(t *testing.T) {
	cases := []struct {
		input    string
		priority string
	}{
		{"create a request to schedule HVAC inspection urgently", "critical"},
		{"create a request to replace the projector asap", "critical"},
		{"create a request to order supplies, high priority", "high"},
		{"create a request to repaint the lobby, low priority", "low"},
		{"create a request to fix the coffee machine", "medium"},
	}
	for _, tc := range cases {
		p := extractRequestCreate(tc.input).(RequestCreatePayload)
		if p.Priority != tc.priority {
			t.Fatalf("extractRequestCreate(%q) priority = %q, want %q", tc.input, p.Priority, tc.priority)
		}
	}
}

func TestExtractRequestCreate_StripsUrgencyWords(t *testing.T) {
	p := extractRequestCreate("create a request to schedule HVAC inspection urgently").(RequestCreatePayload)
	if strings.Contains(strings.ToLower(p.Title), "urgent") {
		t.Fatalf("urgency word left in title: %q", p.Title)
	}
	if p.Title != "schedule HVAC inspection" {
		t.Fatalf("unexpected title: %q", p.Title)
	}
	if p.Description != "create a request to schedule HVAC inspection urgently" {
		t.Fatalf("description must be the full input, got %q", p.Description)
	}
}

func TestExtractRequestCreate_ShortTitleFallsBack(t *testing.T) {
	p := extractRequestCreate("new request").(RequestCreatePayload)
	if p.Title != "new request" {
		t.Fatalf("expected full input as title, got %q", p.Title)
	}
}

func TestExtractStatusFilters(t *testing.T) {
	if p := extractApprovalsList("show me all pending approvals").(ApprovalsListPayload); p.Status != "pending" {
		t.Fatalf("expected pending filter, got %q", p.Status)
	}
	if p := extractApprovalsList("show approvals").(ApprovalsListPayload); p.Status != "" {
		t.Fatalf("expected no filter, got %q", p.Status)
	}
	if p := extractRequestsList("show all open requests").(RequestsListPayload); p.Status != "open" {
		t.Fatalf("expected open filter, got %q", p.Status)
	}
	if p := extractRequestsList("show requests").(RequestsListPayload); p.Status != "" {
		t.Fatalf("expected no filter, got %q", p.Status)
	}
}
