package domain

import "time"

// DefaultTickPeriod is the fixed cadence at which a run advances one phase.
const DefaultTickPeriod = 2000 * time.Millisecond

// Display constants shared by every presentation host.
const (
	// NoValue is rendered wherever a selection or result is absent.
	NoValue = "--"

	MessageBitsRequired      = "Please select both Classical Bits!"
	MessageTransmissionFault = "Transmission Error due to gate usage cut."

	LabelStart   = "Start Simulation"
	LabelRunning = "Simulating..."
)
