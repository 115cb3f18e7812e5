package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ActivityEvent describes one record change in the backend data directory.
type ActivityEvent struct {
	Kind   string `json:"kind"` // knowledge, approvals, requests
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Status string `json:"status,omitempty"`
}

// ActivityHub fans out record-change events to connected SSE clients.
type ActivityHub struct {
	dataDir string
	logger  *slog.Logger

	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewActivityHub creates an ActivityHub watching the given data directory.
func NewActivityHub(dataDir string, logger *slog.Logger) *ActivityHub {
	return &ActivityHub{
		dataDir: dataDir,
		logger:  logger,
		clients: make(map[chan []byte]struct{}),
	}
}

// Start watches the record directories and broadcasts change events.
// Blocks until ctx is cancelled.
func (h *ActivityHub) Start(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		h.logger.Error("activity: failed to create watcher", "err", err)
		return
	}
	defer func() { _ = watcher.Close() }()

	for _, kind := range []string{"knowledge", "approvals", "requests"} {
		dir := filepath.Join(h.dataDir, kind)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			h.logger.Error("activity: failed to create data dir", "err", err)
			return
		}
		if err := watcher.Add(dir); err != nil {
			h.logger.Error("activity: failed to watch data dir", "dir", dir, "err", err)
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".yaml") || strings.HasSuffix(event.Name, ".tmp") {
				continue
			}

			ev, err := h.loadEvent(event.Name)
			if err != nil {
				continue // transient read during atomic write
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			h.broadcast(data)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error("activity: watcher error", "err", err)
		}
	}
}

func (h *ActivityHub) loadEvent(path string) (*ActivityEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec struct {
		Title  string `yaml:"title"`
		Status string `yaml:"status"`
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &ActivityEvent{
		Kind:   filepath.Base(filepath.Dir(path)),
		ID:     strings.TrimSuffix(filepath.Base(path), ".yaml"),
		Title:  rec.Title,
		Status: rec.Status,
	}, nil
}

func (h *ActivityHub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			// Slow client; drop this event.
		}
	}
}

func (h *ActivityHub) addClient(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ch] = struct{}{}
}

func (h *ActivityHub) removeClient(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ch)
	close(ch)
}

// ServeHTTP implements http.Handler for SSE connections.
func (h *ActivityHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan []byte, 32)
	h.addClient(ch)
	defer h.removeClient(ch)

	keepalive := time.NewTicker(20 * time.Second)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepalive.C:
			_, _ = fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case data := <-ch:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
