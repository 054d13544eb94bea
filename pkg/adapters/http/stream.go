package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// StreamMessage is one SSE frame: the event type and the state diff it caused.
type StreamMessage struct {
	Type domain.EventType
	Diff *domain.StateDiff
}

// StreamManager handles active SSE connections
type StreamManager struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[chan StreamMessage]struct{} // SessionID -> Set of Channels
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		logger:      logger,
		subscribers: make(map[string]map[chan StreamMessage]struct{}),
	}
}

func (sm *StreamManager) Subscribe(sessionID string) (<-chan StreamMessage, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan StreamMessage, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan StreamMessage]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[sessionID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, sessionID)
				}
			}
		})
	}
}

func (sm *StreamManager) Broadcast(sessionID string, msg StreamMessage) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Observer returns a runner observer that broadcasts diffs for sessionID.
// Runners deliver events serially, so prev needs no lock.
func (sm *StreamManager) Observer(sessionID string) runner.Observer {
	var prev *domain.RunState
	return func(evt *domain.Event) {
		diff := domain.Diff(prev, evt.State)
		prev = evt.State
		if diff == nil {
			diff = &domain.StateDiff{RunID: evt.RunID}
		}
		sm.Broadcast(sessionID, StreamMessage{Type: evt.Type, Diff: diff})
	}
}

// matches reports whether a diff touches any of the watched fields.
func matches(diff *domain.StateDiff, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	for _, field := range watch {
		switch strings.TrimSpace(field) {
		case "phase":
			if diff.PhaseIndex != nil {
				return true
			}
		case "input":
			if diff.Input != nil {
				return true
			}
		case "result":
			if diff.Result != nil || contains(diff.Cleared, "result") {
				return true
			}
		case "failure":
			if diff.Failure != nil || contains(diff.Cleared, "failure") {
				return true
			}
		case "completed":
			if diff.Completed != nil {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// SubscribeEvents handles the GET /sessions/{id}/events request (SSE).
// The optional watch query (e.g. "phase,result") filters frames by changed field.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	sess, err := s.Sessions.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	var watch []string
	if q := r.URL.Query().Get("watch"); q != "" {
		watch = strings.Split(q, ",")
	}

	current := sess.Runner.Snapshot()
	initial := domain.Diff(nil, current)
	if initial == nil {
		initial = &domain.StateDiff{RunID: current.RunID}
	}
	snapshot, _ := json.Marshal(initial)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", snapshot)
	flusher.Flush()
	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", sessionID)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !matches(msg.Diff, watch) {
				continue
			}
			data, err := json.Marshal(msg.Diff)
			if err != nil {
				s.logger.Error("SSE: diff encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, data)
			flusher.Flush()
		}
	}
}
