package domain

import "fmt"

// Phase is the index of a protocol step. PhaseIdle means no run is active.
type Phase int

const (
	PhaseIdle         Phase = -1
	PhaseEntanglement Phase = 0
	PhaseEncoding     Phase = 1
	PhaseTransmission Phase = 2
	PhaseDecoding     Phase = 3
)

// PhaseCount is the number of phases in a run.
const PhaseCount = 4

// LastPhase is the phase whose tick completes a run.
const LastPhase = PhaseDecoding

// PhaseInfo is the immutable title and description of a phase.
type PhaseInfo struct {
	Phase       Phase  `json:"index" yaml:"index"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

var phaseTable = [PhaseCount]PhaseInfo{
	{Phase: PhaseEntanglement, Title: "Entanglement", Description: "Create Bell state Φ⁺"},
	{Phase: PhaseEncoding, Title: "Encoding", Description: "Apply X/Z gates based on bits"},
	{Phase: PhaseTransmission, Title: "Transmission", Description: "Send qubit A to receiver"},
	{Phase: PhaseDecoding, Title: "Decoding", Description: "Perform Bell measurement"},
}

// Phases returns the protocol timeline in order.
func Phases() []PhaseInfo {
	out := make([]PhaseInfo, PhaseCount)
	copy(out, phaseTable[:])
	return out
}

// Valid reports whether p is one of the four running phases.
func (p Phase) Valid() bool {
	return p >= PhaseEntanglement && p <= LastPhase
}

// Info returns the reference data for p.
func (p Phase) Info() (PhaseInfo, bool) {
	if !p.Valid() {
		return PhaseInfo{}, false
	}
	return phaseTable[p], true
}

func (p Phase) String() string {
	if p == PhaseIdle {
		return "idle"
	}
	if info, ok := p.Info(); ok {
		return info.Title
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// PhaseStatus is the human readable progress of one phase card.
type PhaseStatus string

const (
	StatusWaiting    PhaseStatus = "Waiting..."
	StatusInProgress PhaseStatus = "In Progress..."
	StatusDone       PhaseStatus = "Done"
)
