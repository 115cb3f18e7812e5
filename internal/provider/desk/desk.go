// Package desk implements the provider interfaces against the opsdesk
// backend REST API.
package desk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/caura-labs/opsdesk/internal/provider"
)

// Client talks to the opsdesk backend over HTTP. It implements
// provider.Knowledge, provider.Approvals, provider.Requests and
// provider.HealthChecker.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// New returns a Client for the given base URL. token may be empty when the
// backend runs without auth (e.g. the local dev server).
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type createEntryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type createApprovalRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount,omitempty"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

type createTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// CreateEntry stores a knowledge entry.
func (c *Client) CreateEntry(ctx context.Context, title, content string) (*provider.Entry, error) {
	var entry provider.Entry
	err := c.do(ctx, http.MethodPost, "/api/knowledge", createEntryRequest{Title: title, Content: content}, http.StatusCreated, &entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SearchEntries returns entries matching query.
func (c *Client) SearchEntries(ctx context.Context, query string) ([]provider.Entry, error) {
	var entries []provider.Entry
	path := "/api/knowledge?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListEntries returns all knowledge entries.
func (c *Client) ListEntries(ctx context.Context) ([]provider.Entry, error) {
	var entries []provider.Entry
	if err := c.do(ctx, http.MethodGet, "/api/knowledge", nil, http.StatusOK, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RequestApproval submits a new approval request.
func (c *Client) RequestApproval(ctx context.Context, title, description string, amount *float64) (*provider.Approval, error) {
	var approval provider.Approval
	body := createApprovalRequest{Title: title, Description: description, Amount: amount}
	if err := c.do(ctx, http.MethodPost, "/api/approvals", body, http.StatusCreated, &approval); err != nil {
		return nil, err
	}
	return &approval, nil
}

// ListApprovals returns approvals, optionally filtered by status.
func (c *Client) ListApprovals(ctx context.Context, status string) ([]provider.Approval, error) {
	path := "/api/approvals"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var approvals []provider.Approval
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// DecideApproval records a decision ("approved" or "denied") on an approval.
func (c *Client) DecideApproval(ctx context.Context, id, decision string) (*provider.Approval, error) {
	var approval provider.Approval
	path := "/api/approvals/" + url.PathEscape(id) + "/decision"
	if err := c.do(ctx, http.MethodPost, path, decisionRequest{Decision: decision}, http.StatusOK, &approval); err != nil {
		return nil, err
	}
	return &approval, nil
}

// CreateTicket submits a new work request.
func (c *Client) CreateTicket(ctx context.Context, title, description, priority string) (*provider.Ticket, error) {
	var ticket provider.Ticket
	body := createTicketRequest{Title: title, Description: description, Priority: priority}
	if err := c.do(ctx, http.MethodPost, "/api/requests", body, http.StatusCreated, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListTickets returns work requests, optionally filtered by status.
func (c *Client) ListTickets(ctx context.Context, status string) ([]provider.Ticket, error) {
	path := "/api/requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var tickets []provider.Ticket
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// CheckHealth reports backend liveness.
func (c *Client) CheckHealth(ctx context.Context) (*provider.Health, error) {
	var h provider.Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, http.StatusOK, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do sends one JSON request and decodes the response into out when out is
// non-nil. A response status other than wantStatus is an error carrying the
// response body.
func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("desk: marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("desk: creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("desk: sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("desk: reading response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("desk: unexpected status %d: %s", resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("desk: parsing response: %w", err)
		}
	}
	return nil
}
