package ports

import (
	"context"

	"github.com/aretw0/superdense/pkg/domain"
)

// StatelessEngine defines the interface for state machine cores that do not maintain internal state.
// Every method receives the current state and returns the next one, leaving the input untouched.
type StatelessEngine interface {
	// Configure replaces the run input, returning a fresh idle state.
	Configure(ctx context.Context, state *domain.RunState, input domain.Input) (*domain.RunState, error)

	// Start begins a run. On validation failure it returns the state carrying the failure and the error.
	Start(ctx context.Context, state *domain.RunState) (*domain.RunState, error)

	// Tick advances a running state by exactly one phase, completing the run after the last phase.
	Tick(ctx context.Context, state *domain.RunState) (*domain.RunState, error)

	// Render projects the state for presentation without advancing it.
	Render(state *domain.RunState) domain.View
}
