package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func useTempDir(t *testing.T) {
	t.Helper()
	orig := historyDir
	SetHistoryDir(t.TempDir())
	t.Cleanup(func() { SetHistoryDir(orig) })
}

func TestSaveAndList(t *testing.T) {
	useTempDir(t)

	first := New("knowledge.create", "stored refund policy", "e1")
	if err := first.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := New("approvals.request", "requested vendor payment", "a1")
	second.CreatedAt = second.CreatedAt.Add(time.Second)
	if err := second.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	actions, err := List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	// Newest first.
	if actions[0].Intent != "approvals.request" {
		t.Fatalf("unexpected order: %s first", actions[0].Intent)
	}
}

func TestList_SkipsCorruptFiles(t *testing.T) {
	useTempDir(t)

	a := New("status", "checked backend", "")
	if err := a.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(historyDir, "bad.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	actions, err := List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected corrupt file skipped, got %d actions", len(actions))
	}
}

func TestRecordIDs_FiltersByIntentPrefix(t *testing.T) {
	useTempDir(t)

	for _, a := range []*Action{
		New("approvals.request", "requested laptop", "a1"),
		New("approvals.decide", "approved a1", "a1"),
		New("requests.create", "created ticket", "t1"),
	} {
		if err := a.Save(); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	ids, err := RecordIDs("approvals.")
	if err != nil {
		t.Fatalf("record ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "a1" {
		t.Fatalf("expected deduplicated [a1], got %v", ids)
	}
}

func TestCleanup(t *testing.T) {
	useTempDir(t)

	old := New("status", "old check", "")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	if err := old.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh := New("status", "fresh check", "")
	if err := fresh.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	deleted, err := Cleanup(24 * time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}

	actions, err := List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(actions) != 1 || actions[0].Summary != "fresh check" {
		t.Fatalf("unexpected survivors: %+v", actions)
	}
}
