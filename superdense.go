package superdense

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/superdense/internal/runtime"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/aretw0/superdense/pkg/ports"
)

// Engine is the high-level entry point for the superdense library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	model   *outcome.Model
	source  ports.RandomSource
	clock   ports.Clock
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

var _ ports.StatelessEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRandomSource injects the randomness consumed when gate cutting is enabled.
func WithRandomSource(src ports.RandomSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithClock sets the time source used to stamp states and events.
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.model = outcome.New(eng.source)
	eng.runtime = runtime.NewEngine(eng.model,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithClock(eng.clock),
	)
	return eng
}

// Configure replaces the run input and returns a fresh idle state.
func (e *Engine) Configure(ctx context.Context, state *domain.RunState, input domain.Input) (*domain.RunState, error) {
	return e.runtime.Configure(ctx, state, input)
}

// Start begins a run.
func (e *Engine) Start(ctx context.Context, state *domain.RunState) (*domain.RunState, error) {
	return e.runtime.Start(ctx, state)
}

// Tick advances a running state by one phase.
func (e *Engine) Tick(ctx context.Context, state *domain.RunState) (*domain.RunState, error) {
	return e.runtime.Tick(ctx, state)
}

// Render generates the presentation view for the state without transitioning.
func (e *Engine) Render(state *domain.RunState) domain.View {
	return e.runtime.Render(state)
}

// Compute evaluates the outcome model directly, without walking the phases.
func (e *Engine) Compute(pair domain.BitPair, gateCutting bool) (domain.BitPair, error) {
	return e.model.Compute(pair, gateCutting)
}

// Phases returns the protocol timeline.
func (e *Engine) Phases() []domain.PhaseInfo {
	return domain.Phases()
}

// Encodings returns the static gate reference table.
func (e *Engine) Encodings() []domain.Encoding {
	return e.model.EncodingTable()
}
