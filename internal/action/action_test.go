package action

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/caura-labs/opsdesk/internal/intent"
	"github.com/caura-labs/opsdesk/internal/provider"
	"github.com/caura-labs/opsdesk/internal/state"
)

type fakeBackend struct {
	calls []string

	entry    *provider.Entry
	entries  []provider.Entry
	approval *provider.Approval
	ticket   *provider.Ticket
	err      error
}

func (f *fakeBackend) CreateEntry(_ context.Context, title, content string) (*provider.Entry, error) {
	f.calls = append(f.calls, "create "+title)
	return f.entry, f.err
}

func (f *fakeBackend) SearchEntries(_ context.Context, query string) ([]provider.Entry, error) {
	f.calls = append(f.calls, "search "+query)
	return f.entries, f.err
}

func (f *fakeBackend) ListEntries(_ context.Context) ([]provider.Entry, error) {
	f.calls = append(f.calls, "list entries")
	return f.entries, f.err
}

func (f *fakeBackend) RequestApproval(_ context.Context, title, _ string, _ *float64) (*provider.Approval, error) {
	f.calls = append(f.calls, "request approval "+title)
	return f.approval, f.err
}

func (f *fakeBackend) ListApprovals(_ context.Context, status string) ([]provider.Approval, error) {
	f.calls = append(f.calls, "list approvals "+status)
	return nil, f.err
}

func (f *fakeBackend) DecideApproval(_ context.Context, id, decision string) (*provider.Approval, error) {
	f.calls = append(f.calls, "decide "+id+" "+decision)
	return f.approval, f.err
}

func (f *fakeBackend) CreateTicket(_ context.Context, title, _, priority string) (*provider.Ticket, error) {
	f.calls = append(f.calls, "create ticket "+title+" "+priority)
	return f.ticket, f.err
}

func (f *fakeBackend) ListTickets(_ context.Context, status string) ([]provider.Ticket, error) {
	f.calls = append(f.calls, "list tickets "+status)
	return nil, f.err
}

func (f *fakeBackend) CheckHealth(_ context.Context) (*provider.Health, error) {
	f.calls = append(f.calls, "health")
	return &provider.Health{Status: "ok", Version: "1.2.0"}, f.err
}

func newTestExecutor(f *fakeBackend, out *bytes.Buffer) *Executor {
	return &Executor{
		Providers: Providers{Knowledge: f, Approvals: f, Requests: f, Health: f},
		Render:    NewRenderer(out, false),
	}
}

func TestExecuteSingleCallPerIntent(t *testing.T) {
	amount := 500.0
	f := &fakeBackend{
		entry:    &provider.Entry{ID: "e1", Title: "wifi"},
		approval: &provider.Approval{ID: "a1", Title: "travel", Amount: &amount, Status: "pending"},
		ticket:   &provider.Ticket{ID: "t1", Title: "badge", Priority: "medium", Status: "open"},
	}

	cases := []struct {
		res      *intent.Result
		wantCall string
	}{
		{&intent.Result{Intent: intent.KnowledgeCreate, Payload: intent.KnowledgeCreatePayload{Title: "wifi", Content: "pw"}}, "create wifi"},
		{&intent.Result{Intent: intent.KnowledgeSearch, Payload: intent.KnowledgeSearchPayload{Query: "vpn"}}, "search vpn"},
		{&intent.Result{Intent: intent.KnowledgeList, Payload: intent.KnowledgeListPayload{}}, "list entries"},
		{&intent.Result{Intent: intent.ApprovalRequest, Payload: intent.ApprovalRequestPayload{Title: "travel"}}, "request approval travel"},
		{&intent.Result{Intent: intent.ApprovalsList, Payload: intent.ApprovalsListPayload{Status: "pending"}}, "list approvals pending"},
		{&intent.Result{Intent: intent.ApprovalsDecide, Payload: intent.ApprovalsDecidePayload{ID: "a1", Decision: "approved"}}, "decide a1 approved"},
		{&intent.Result{Intent: intent.RequestCreate, Payload: intent.RequestCreatePayload{Title: "badge", Priority: "medium"}}, "create ticket badge medium"},
		{&intent.Result{Intent: intent.RequestsList, Payload: intent.RequestsListPayload{Status: "open"}}, "list tickets open"},
		{&intent.Result{Intent: intent.Status, Payload: intent.StatusPayload{}}, "health"},
	}

	for _, tc := range cases {
		f.calls = nil
		var out bytes.Buffer
		if err := newTestExecutor(f, &out).Execute(context.Background(), tc.res); err != nil {
			t.Fatalf("Execute(%s): %v", tc.res.Intent, err)
		}
		if len(f.calls) != 1 {
			t.Fatalf("Execute(%s) made %d backend calls, want 1: %v", tc.res.Intent, len(f.calls), f.calls)
		}
		if f.calls[0] != tc.wantCall {
			t.Errorf("Execute(%s) called %q, want %q", tc.res.Intent, f.calls[0], tc.wantCall)
		}
		if out.Len() == 0 {
			t.Errorf("Execute(%s) produced no output", tc.res.Intent)
		}
	}
}

func TestExecutePropagatesBackendError(t *testing.T) {
	f := &fakeBackend{err: errors.New("connection refused")}
	var out bytes.Buffer
	err := newTestExecutor(f, &out).Execute(context.Background(), &intent.Result{
		Intent:  intent.KnowledgeSearch,
		Payload: intent.KnowledgeSearchPayload{Query: "vpn"},
	})
	if err == nil {
		t.Fatal("Execute with failing backend returned nil error")
	}
	if !strings.Contains(err.Error(), "searching entries") {
		t.Errorf("error %q missing call context", err)
	}
}

func TestExecuteRecordsHistory(t *testing.T) {
	state.SetHistoryDir(t.TempDir())
	f := &fakeBackend{entry: &provider.Entry{ID: "e9", Title: "vpn setup"}}
	var out bytes.Buffer
	exec := newTestExecutor(f, &out)
	exec.KeepHistory = true

	err := exec.Execute(context.Background(), &intent.Result{
		Intent:  intent.KnowledgeCreate,
		Payload: intent.KnowledgeCreatePayload{Title: "vpn setup", Content: "use wireguard"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	actions, err := state.List()
	if err != nil {
		t.Fatalf("state.List: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("got %d recorded actions, want 1", len(actions))
	}
	if actions[0].RecordID != "e9" {
		t.Errorf("recorded RecordID = %q, want e9", actions[0].RecordID)
	}
	if actions[0].Intent != string(intent.KnowledgeCreate) {
		t.Errorf("recorded Intent = %q, want %s", actions[0].Intent, intent.KnowledgeCreate)
	}
}

func TestRendererPlainOutput(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)
	amount := 1250.5
	r.Approvals([]provider.Approval{
		{ID: "a1", Title: "conference travel", Amount: &amount, Status: "pending", CreatedAt: time.Now()},
		{ID: "a2", Title: "new laptop", Status: "approved"},
	})
	got := out.String()
	for _, want := range []string{"a1", "conference travel", "$1250.50", "pending", "a2", "-", "approved"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("plain output contains ANSI escapes:\n%s", got)
	}
}
