package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/caura-labs/opsdesk/internal/provider"
)

// Store holds backend records in memory and mirrors every record to a YAML
// file under its data directory. The file mirror is what makes records
// survive restarts and what the activity feed watches.
type Store struct {
	dir string

	mu        sync.Mutex
	entries   []provider.Entry
	approvals []provider.Approval
	tickets   []provider.Ticket
}

// OpenStore loads any existing records from dir, creating it if needed.
func OpenStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	for _, kind := range []string{"knowledge", "approvals", "requests"} {
		if err := os.MkdirAll(filepath.Join(dir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	if err := loadDir(filepath.Join(s.dir, "knowledge"), &s.entries); err != nil {
		return err
	}
	if err := loadDir(filepath.Join(s.dir, "approvals"), &s.approvals); err != nil {
		return err
	}
	if err := loadDir(filepath.Join(s.dir, "requests"), &s.tickets); err != nil {
		return err
	}
	sort.Slice(s.entries, func(i, j int) bool { return s.entries[i].CreatedAt.After(s.entries[j].CreatedAt) })
	sort.Slice(s.approvals, func(i, j int) bool { return s.approvals[i].CreatedAt.After(s.approvals[j].CreatedAt) })
	sort.Slice(s.tickets, func(i, j int) bool { return s.tickets[i].CreatedAt.After(s.tickets[j].CreatedAt) })
	return nil
}

func loadDir[T any](dir string, out *[]T) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			continue
		}
		var rec T
		if err := yaml.Unmarshal(data, &rec); err != nil {
			continue // skip corrupt records
		}
		*out = append(*out, rec)
	}
	return nil
}

// persist writes rec atomically so the activity watcher never sees a partial file.
func (s *Store) persist(kind, id string, rec any) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	path := filepath.Join(s.dir, kind, id+".yaml")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming record: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()[:8]
}

// AddEntry stores a knowledge entry.
func (s *Store) AddEntry(title, content string) (*provider.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := provider.Entry{
		ID:        newID(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.persist("knowledge", e.ID, e); err != nil {
		return nil, err
	}
	s.entries = append([]provider.Entry{e}, s.entries...)
	return &e, nil
}

// SearchEntries returns entries whose title or content contains query,
// case-insensitively. An empty query matches everything.
func (s *Store) SearchEntries(query string) []provider.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	out := []provider.Entry{} // lists encode as [], never null
	for _, e := range s.entries {
		if q == "" || strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	return out
}

// AddApproval submits an approval request in pending state.
func (s *Store) AddApproval(title, description string, amount *float64) (*provider.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := provider.Approval{
		ID:          newID(),
		Title:       title,
		Description: description,
		Amount:      amount,
		Status:      "pending",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.persist("approvals", a.ID, a); err != nil {
		return nil, err
	}
	s.approvals = append([]provider.Approval{a}, s.approvals...)
	return &a, nil
}

// ListApprovals returns approvals, filtered by status when non-empty.
func (s *Store) ListApprovals(status string) []provider.Approval {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []provider.Approval{}
	for _, a := range s.approvals {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// DecideApproval records a decision on the approval with the given ID.
func (s *Store) DecideApproval(id, decision string) (*provider.Approval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.approvals {
		if s.approvals[i].ID != id {
			continue
		}
		s.approvals[i].Status = decision
		if err := s.persist("approvals", id, s.approvals[i]); err != nil {
			return nil, err
		}
		a := s.approvals[i]
		return &a, nil
	}
	return nil, fmt.Errorf("approval %s not found", id)
}

// AddTicket creates a work request in open state.
func (s *Store) AddTicket(title, description, priority string) (*provider.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if priority == "" {
		priority = "medium"
	}
	t := provider.Ticket{
		ID:          newID(),
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      "open",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.persist("requests", t.ID, t); err != nil {
		return nil, err
	}
	s.tickets = append([]provider.Ticket{t}, s.tickets...)
	return &t, nil
}

// ListTickets returns work requests, filtered by status when non-empty.
func (s *Store) ListTickets(status string) []provider.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []provider.Ticket{}
	for _, t := range s.tickets {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
