package domain

import "time"

// Input is what the caller chooses before a run: the message and the fault mode.
type Input struct {
	Bits BitPair `json:"bits"`

	// GateCutting enables the probabilistic transmission fault.
	GateCutting bool `json:"gate_cutting"`
}

// RunState represents the current snapshot of a simulation run.
type RunState struct {
	// RunID identifies the active or last completed run. Empty before the first start.
	RunID string `json:"run_id,omitempty"`

	// Input is fixed for the duration of a run.
	Input Input `json:"input"`

	// PhaseIndex is PhaseIdle or the phase currently in progress.
	PhaseIndex Phase `json:"phase_index"`

	// Result holds the received bits of a successful run.
	Result *BitPair `json:"result,omitempty"`

	// Failure holds a validation or transmission failure. Never set together with Result.
	Failure *Failure `json:"failure,omitempty"`

	// Completed is true once a run reached its completion tick, until inputs change or a new run starts.
	Completed bool `json:"completed"`

	StartedAt time.Time `json:"started_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewRunState creates a clean idle state for the given input.
func NewRunState(input Input) *RunState {
	return &RunState{
		Input:      input,
		PhaseIndex: PhaseIdle,
	}
}

// Running reports whether a run is in progress.
func (s *RunState) Running() bool {
	return s.PhaseIndex != PhaseIdle
}

// Snapshot returns a deep copy safe to hand to observers.
func (s *RunState) Snapshot() *RunState {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Result != nil {
		r := *s.Result
		cp.Result = &r
	}
	if s.Failure != nil {
		f := *s.Failure
		cp.Failure = &f
	}
	return &cp
}

// Err returns the failure as an error, or nil.
func (s *RunState) Err() error {
	return s.Failure.Err()
}

// StatusOf computes the display status of phase p.
// A completed run shows every phase as done until inputs change.
func (s *RunState) StatusOf(p Phase) PhaseStatus {
	switch {
	case s.Running() && p == s.PhaseIndex:
		return StatusInProgress
	case s.Running() && p < s.PhaseIndex:
		return StatusDone
	case !s.Running() && s.Completed:
		return StatusDone
	default:
		return StatusWaiting
	}
}
