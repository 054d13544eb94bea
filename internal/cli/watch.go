package cli

import (
	"context"
	"errors"
	"fmt"

	redisAdapter "github.com/aretw0/superdense/pkg/adapters/redis"
	"github.com/aretw0/superdense/pkg/domain"
)

// Watch prints the events a served session mirrors to Redis until ctx is done.
// The last stored state is printed first so late watchers see where the run is.
func Watch(ctx context.Context, pub *redisAdapter.Publisher, sessionID string, opts SimulateOptions) error {
	handler := newEventHandler(opts)

	state, err := pub.LastState(ctx, sessionID)
	switch {
	case err == nil:
		handler.Handle(snapshotEvent(state))
	case !errors.Is(err, domain.ErrSessionNotFound):
		return err
	}

	events, err := pub.Subscribe(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("error subscribing to session %s: %w", sessionID, err)
	}
	for evt := range events {
		handler.Handle(evt)
	}
	return handler.Err()
}

// snapshotEvent frames a stored state as the event that would have produced it.
func snapshotEvent(state *domain.RunState) *domain.Event {
	t := domain.EventInputChanged
	switch {
	case state.Running() && state.PhaseIndex == domain.PhaseEntanglement:
		t = domain.EventRunStarted
	case state.Running():
		t = domain.EventPhaseEntered
	case state.Completed:
		t = domain.EventRunCompleted
	case state.Failure != nil && state.Failure.Kind == domain.FailureValidation:
		t = domain.EventValidationFailed
	}
	return domain.NewEvent(t, state.UpdatedAt, state)
}
