package runner

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/aretw0/superdense/pkg/domain"
)

// JSONHandler writes every transition as one JSON line (NDJSON).
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder

	mu  sync.Mutex
	err error
}

// NewJSONHandler creates a handler writing to w (stdout when nil).
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

// Handle is an Observer.
func (h *JSONHandler) Handle(evt *domain.Event) {
	if evt == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Encoder.Encode(evt); err != nil && h.err == nil {
		h.err = err
	}
}

// Err returns the first encoding error, if any.
func (h *JSONHandler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
