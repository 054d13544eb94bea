package domain

// StateDiff represents the changes between two run states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// RunID is always present to identify the target.
	RunID string `json:"run_id,omitempty"`

	PhaseIndex *Phase   `json:"phase_index,omitempty"`
	Input      *Input   `json:"input,omitempty"`
	Result     *BitPair `json:"result,omitempty"`
	Failure    *Failure `json:"failure,omitempty"`
	Completed  *bool    `json:"completed,omitempty"`
	Cleared    []string `json:"cleared,omitempty"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// Returns nil when nothing observable changed.
func Diff(oldState, newState *RunState) *StateDiff {
	if newState == nil {
		return nil
	}
	if oldState == nil {
		oldState = &RunState{PhaseIndex: PhaseIdle}
	}

	diff := &StateDiff{RunID: newState.RunID}
	changed := false

	if oldState.PhaseIndex != newState.PhaseIndex {
		p := newState.PhaseIndex
		diff.PhaseIndex = &p
		changed = true
	}
	if oldState.Input != newState.Input {
		in := newState.Input
		diff.Input = &in
		changed = true
	}
	if oldState.Completed != newState.Completed {
		c := newState.Completed
		diff.Completed = &c
		changed = true
	}

	switch {
	case newState.Result != nil && (oldState.Result == nil || *oldState.Result != *newState.Result):
		r := *newState.Result
		diff.Result = &r
		changed = true
	case newState.Result == nil && oldState.Result != nil:
		diff.Cleared = append(diff.Cleared, "result")
		changed = true
	}

	switch {
	case newState.Failure != nil && (oldState.Failure == nil || *oldState.Failure != *newState.Failure):
		f := *newState.Failure
		diff.Failure = &f
		changed = true
	case newState.Failure == nil && oldState.Failure != nil:
		diff.Cleared = append(diff.Cleared, "failure")
		changed = true
	}

	if !changed {
		return nil
	}
	return diff
}
