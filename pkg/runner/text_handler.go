package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/superdense/pkg/domain"
)

// ContentRenderer transforms a line before it is written.
// This allows ANSI styling without coupling the runner to a terminal library.
type ContentRenderer func(string) (string, error)

// TextHandler prints one human readable line per transition.
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer

	mu  sync.Mutex
	err error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler writing to w (stdout when nil).
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle is an Observer.
func (h *TextHandler) Handle(evt *domain.Event) {
	line := FormatEvent(evt)
	if line == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Renderer != nil {
		if rendered, err := h.Renderer(line); err == nil {
			line = rendered
		}
	}
	if _, err := fmt.Fprintln(h.Writer, line); err != nil && h.err == nil {
		h.err = err
	}
}

// Err returns the first write error, if any.
func (h *TextHandler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// FormatEvent renders an event as a single line of text.
func FormatEvent(evt *domain.Event) string {
	if evt == nil || evt.State == nil {
		return ""
	}
	s := evt.State

	switch evt.Type {
	case domain.EventInputChanged:
		return fmt.Sprintf("Selection: %s  Gate cutting: %s", s.Input.Bits.Display(), onOff(s.Input.GateCutting))
	case domain.EventRunStarted, domain.EventPhaseEntered:
		info, ok := evt.Phase.Info()
		if !ok {
			return ""
		}
		return fmt.Sprintf("[%d/%d] %s: %s", int(info.Phase)+1, domain.PhaseCount, info.Title, info.Description)
	case domain.EventRunCompleted:
		view := domain.NewView(s)
		var b strings.Builder
		fmt.Fprintf(&b, "Original bits: %s  Received bits: %s", view.OriginalBits, view.ReceivedBits)
		if view.Error != "" {
			fmt.Fprintf(&b, "  Error: %s", view.Error)
		}
		return b.String()
	case domain.EventValidationFailed:
		return "Error: " + domain.NewView(s).Error
	default:
		return ""
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
