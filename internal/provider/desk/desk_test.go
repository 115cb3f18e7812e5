package desk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caura-labs/opsdesk/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntry_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/knowledge", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body createEntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refund policy", body.Title)
		assert.Equal(t, "full refund within 30 days", body.Content)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(provider.Entry{ID: "e1", Title: body.Title, Content: body.Content})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", 5*time.Second)
	entry, err := c.CreateEntry(context.Background(), "refund policy", "full refund within 30 days")

	require.NoError(t, err)
	assert.Equal(t, "e1", entry.ID)
	assert.Equal(t, "refund policy", entry.Title)
}

func TestSearchEntries_EncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge", r.URL.Path)
		assert.Equal(t, "escalation protocol", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]provider.Entry{{ID: "e2", Title: "escalation protocol"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	entries, err := c.SearchEntries(context.Background(), "escalation protocol")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e2", entries[0].ID)
}

func TestListApprovals_StatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/approvals", r.URL.Path)
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode([]provider.Approval{{ID: "a1", Status: "pending"}})
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	approvals, err := c.ListApprovals(context.Background(), "pending")

	require.NoError(t, err)
	require.Len(t, approvals, 1)
	assert.Equal(t, "pending", approvals[0].Status)
}

func TestDecideApproval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/approvals/a1/decision", r.URL.Path)

		var body decisionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "denied", body.Decision)

		json.NewEncoder(w).Encode(provider.Approval{ID: "a1", Status: "denied"})
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	approval, err := c.DecideApproval(context.Background(), "a1", "denied")

	require.NoError(t, err)
	assert.Equal(t, "denied", approval.Status)
}

func TestRequestApproval_OmitsNilAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasAmount := raw["amount"]
		assert.False(t, hasAmount, "nil amount must be omitted from the body")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(provider.Approval{ID: "a2", Status: "pending"})
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	_, err := c.RequestApproval(context.Background(), "conference", "attend the conference", nil)
	require.NoError(t, err)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-token", 5*time.Second)
	_, err := c.ListEntries(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "desk: unexpected status 401")
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(provider.Health{Status: "ok"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, "", 5*time.Second)
	_, err := c.CheckHealth(ctx)
	require.Error(t, err)
}
