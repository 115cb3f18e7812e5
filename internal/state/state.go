// Package state keeps a local record of executed actions under
// .opsdesk/history, one YAML file per action. The history feeds the recent
// command and shell completion of approval IDs; classification itself is
// never recorded; only actions that actually ran.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var historyDir = ".opsdesk/history"

// SetHistoryDir overrides the default history directory path.
func SetHistoryDir(dir string) { historyDir = dir }

// Action records one executed instruction.
type Action struct {
	ID        string    `yaml:"id"`
	Intent    string    `yaml:"intent"`
	Summary   string    `yaml:"summary"`
	RecordID  string    `yaml:"record_id,omitempty"` // backend record produced or affected
	CreatedAt time.Time `yaml:"created_at"`
}

// New creates an Action with a fresh ID.
func New(intent, summary, recordID string) *Action {
	now := time.Now()
	return &Action{
		ID:        now.Format("20060102-150405") + "-" + uuid.NewString()[:8],
		Intent:    intent,
		Summary:   summary,
		RecordID:  recordID,
		CreatedAt: now,
	}
}

// Save writes the Action atomically to <historyDir>/<id>.yaml.
func (a *Action) Save() error {
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshaling action: %w", err)
	}

	dest := filepath.Join(historyDir, a.ID+".yaml")
	tmp := dest + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp action file: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("renaming action file: %w", err)
	}

	return nil
}

// List returns all recorded actions sorted by created_at descending.
func List() ([]*Action, error) {
	entries, err := filepath.Glob(filepath.Join(historyDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	var actions []*Action
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			continue // skip unreadable files
		}
		var a Action
		if err := yaml.Unmarshal(data, &a); err != nil {
			continue // skip corrupt files
		}
		actions = append(actions, &a)
	}

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].CreatedAt.After(actions[j].CreatedAt)
	})

	return actions, nil
}

// RecordIDs returns the distinct backend record IDs of actions whose intent
// has the given prefix, newest first. Used for shell completion.
func RecordIDs(intentPrefix string) ([]string, error) {
	actions, err := List()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, a := range actions {
		if a.RecordID == "" || seen[a.RecordID] {
			continue
		}
		if intentPrefix != "" && !strings.HasPrefix(a.Intent, intentPrefix) {
			continue
		}
		seen[a.RecordID] = true
		ids = append(ids, a.RecordID)
	}
	return ids, nil
}

// Cleanup deletes action files older than the given retention duration.
// Returns the number of files deleted.
func Cleanup(retention time.Duration) (int, error) {
	entries, err := filepath.Glob(filepath.Join(historyDir, "*.yaml"))
	if err != nil {
		return 0, fmt.Errorf("listing actions for cleanup: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0

	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var a Action
		if err := yaml.Unmarshal(data, &a); err != nil {
			continue
		}
		if a.CreatedAt.After(cutoff) {
			continue // not old enough
		}
		if err := os.Remove(path); err == nil {
			deleted++
		}
	}

	return deleted, nil
}
