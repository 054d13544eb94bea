package domain

import "errors"

// ErrBitsRequired is returned when a run is started before both bits are chosen.
var ErrBitsRequired = errors.New("both bits required")

// ErrTransmissionFault is the simulated channel failure produced when gate cutting is enabled.
var ErrTransmissionFault = errors.New("transmission fault")

// ErrRunInProgress is returned when starting or reconfiguring a runner that is not idle.
var ErrRunInProgress = errors.New("run in progress")

// ErrNotRunning is returned when a tick is delivered to an idle run.
var ErrNotRunning = errors.New("no run in progress")

// ErrInvalidBit is returned when a bit value is neither "0", "1" nor unset.
var ErrInvalidBit = errors.New("invalid bit")

// ErrSessionNotFound is returned when a session ID cannot be found in the manager.
var ErrSessionNotFound = errors.New("session not found")

// FailureKind classifies a Failure recorded in a RunState.
type FailureKind string

const (
	FailureValidation   FailureKind = "validation"
	FailureTransmission FailureKind = "transmission"
)

// Failure is the serialisable error condition carried by a RunState.
type Failure struct {
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

// FailureFrom maps a run error to its Failure record. Unknown errors return nil.
func FailureFrom(err error) *Failure {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBitsRequired):
		return &Failure{Kind: FailureValidation, Message: MessageBitsRequired}
	case errors.Is(err, ErrTransmissionFault):
		return &Failure{Kind: FailureTransmission, Message: MessageTransmissionFault}
	default:
		return nil
	}
}

// Err returns the sentinel error matching the failure kind.
func (f *Failure) Err() error {
	if f == nil {
		return nil
	}
	switch f.Kind {
	case FailureValidation:
		return ErrBitsRequired
	case FailureTransmission:
		return ErrTransmissionFault
	default:
		return errors.New(f.Message)
	}
}
