package domain

// Gate is one operation drawn on the circuit diagram.
type Gate struct {
	Label string `json:"label"`
	// Cut marks gates skipped by gate cutting; hosts render them struck through.
	Cut bool `json:"cut"`
}

// Wire is one qubit line of the circuit diagram.
type Wire struct {
	Name  string `json:"name"`
	Gates []Gate `json:"gates"`
}

// PhaseView is a single phase card.
type PhaseView struct {
	PhaseInfo
	Status  PhaseStatus `json:"status"`
	Current bool        `json:"current"`
}

// View is the presentation-ready projection of a RunState.
// Hosts render it verbatim and hold no protocol logic of their own.
type View struct {
	Selection    string      `json:"selection"`
	GateCutting  bool        `json:"gate_cutting"`
	QubitStates  string      `json:"qubit_states"`
	Circuit      []Wire      `json:"circuit"`
	Phases       []PhaseView `json:"phases"`
	Active       bool        `json:"active"`
	StartLabel   string      `json:"start_label"`
	OriginalBits string      `json:"original_bits"`
	ReceivedBits string      `json:"received_bits"`
	Error        string      `json:"error,omitempty"`
}

// NewView projects state into a View.
func NewView(state *RunState) View {
	v := View{
		Selection:    state.Input.Bits.Display(),
		GateCutting:  state.Input.GateCutting,
		QubitStates:  "|0⟩    |0⟩",
		Circuit:      circuitFor(state.Input.GateCutting),
		Active:       state.Running(),
		StartLabel:   LabelStart,
		OriginalBits: state.Input.Bits.Display(),
		ReceivedBits: NoValue,
	}
	if v.Active {
		v.StartLabel = LabelRunning
	}

	for _, info := range phaseTable {
		v.Phases = append(v.Phases, PhaseView{
			PhaseInfo: info,
			Status:    state.StatusOf(info.Phase),
			Current:   state.PhaseIndex == info.Phase,
		})
	}

	if state.Failure != nil {
		v.Error = state.Failure.Message
	} else if state.Result != nil {
		v.ReceivedBits = state.Result.String()
	}
	return v
}

func circuitFor(gateCutting bool) []Wire {
	return []Wire{
		{Name: "Qubit A", Gates: []Gate{
			{Label: "H"},
			{Label: "X", Cut: gateCutting},
			{Label: "Z", Cut: gateCutting},
		}},
		{Name: "Qubit B", Gates: []Gate{
			{Label: "Measurement"},
			{Label: "Bell Basis"},
		}},
	}
}
