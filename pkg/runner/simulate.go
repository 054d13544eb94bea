package runner

import (
	"context"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
)

// Simulate runs input to completion without a clock and returns the final
// state with every event the run produced. Validation failures return the
// rejected state together with the error.
func Simulate(ctx context.Context, engine ports.StatelessEngine, input domain.Input, opts ...Option) (*domain.RunState, []*domain.Event, error) {
	var events []*domain.Event
	opts = append(opts,
		WithManualTicks(),
		WithInput(input),
		WithObserver(func(evt *domain.Event) {
			events = append(events, evt)
		}),
	)
	r := New(engine, opts...)

	if err := r.Start(ctx); err != nil {
		return r.Snapshot(), events, err
	}
	final, err := r.Drain(ctx)
	return final, events, err
}
