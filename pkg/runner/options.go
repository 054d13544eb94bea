package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithClock sets the time source used to arm the phase ticker.
func WithClock(clock ports.Clock) Option {
	return func(r *Runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithPeriod overrides the delay between phases. Non-positive values are ignored.
func WithPeriod(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.period = d
		}
	}
}

// WithManualTicks disables the ticker. The caller advances runs with Tick or Drain.
func WithManualTicks() Option {
	return func(r *Runner) {
		r.manual = true
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers an observer for the lifetime of the runner.
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.addObserver(obs)
		}
	}
}

// WithInput seeds the initial selection.
func WithInput(input domain.Input) Option {
	return func(r *Runner) {
		r.state = domain.NewRunState(input)
	}
}
