package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInputChanged     EventType = "input_changed"
	EventRunStarted       EventType = "run_started"
	EventPhaseEntered     EventType = "phase_entered"
	EventRunCompleted     EventType = "run_completed"
	EventValidationFailed EventType = "validation_failed"
)

// Event is emitted after every state transition.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
	Phase     Phase     `json:"phase"`

	// State is a snapshot taken right after the transition.
	State *RunState `json:"state"`
}

// NewEvent stamps an event for the given state.
func NewEvent(t EventType, at time.Time, state *RunState) *Event {
	return &Event{
		Timestamp: at,
		Type:      t,
		RunID:     state.RunID,
		Phase:     state.PhaseIndex,
		State:     state.Snapshot(),
	}
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnRunStart         func(context.Context, *Event)
	OnPhaseEnter       func(context.Context, *Event)
	OnRunComplete      func(context.Context, *Event)
	OnValidationFailed func(context.Context, *Event)
}
