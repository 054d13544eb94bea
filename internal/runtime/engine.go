package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/superdense/pkg/adapters/system"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/google/uuid"
)

// OutcomeModel computes the received bits at the completion tick.
type OutcomeModel interface {
	Compute(pair domain.BitPair, gateCutting bool) (domain.BitPair, error)
}

// Engine is the core state machine of a simulation run.
// It holds no run state itself: every transition takes a state and returns the next one.
type Engine struct {
	outcome OutcomeModel
	clock   ports.Clock
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	newID   func() string
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the time source used to stamp states and events.
func WithClock(clock ports.Clock) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithIDGenerator overrides the run ID generator (default: UUIDv4).
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewEngine creates a new engine with dependencies.
func NewEngine(outcome OutcomeModel, opts ...EngineOption) *Engine {
	e := &Engine{
		outcome: outcome,
		clock:   system.Clock{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure replaces the run input. Any previous result or failure is dropped.
// Reconfiguring a running state is rejected.
func (e *Engine) Configure(ctx context.Context, state *domain.RunState, input domain.Input) (*domain.RunState, error) {
	if state != nil && state.Running() {
		return state, fmt.Errorf("configure: %w", domain.ErrRunInProgress)
	}
	next := domain.NewRunState(input)
	next.UpdatedAt = e.clock.Now()
	e.logger.Debug("input configured", "bits", input.Bits.String(), "gate_cutting", input.GateCutting)
	return next, nil
}

// Start begins a run from an idle state.
// With incomplete bits the returned state only differs by the recorded validation failure.
func (e *Engine) Start(ctx context.Context, state *domain.RunState) (*domain.RunState, error) {
	if state == nil {
		state = domain.NewRunState(domain.Input{})
	}
	if state.Running() {
		return state, fmt.Errorf("start: %w", domain.ErrRunInProgress)
	}

	now := e.clock.Now()
	next := state.Snapshot()
	next.UpdatedAt = now

	if !next.Input.Bits.Complete() {
		next.Result = nil
		next.Failure = domain.FailureFrom(domain.ErrBitsRequired)
		e.logger.Debug("start rejected", "bits", next.Input.Bits.String())
		e.emit(ctx, e.hooks.OnValidationFailed, domain.EventValidationFailed, now, next)
		return next, fmt.Errorf("start: %w", domain.ErrBitsRequired)
	}

	next.RunID = e.newID()
	next.PhaseIndex = domain.PhaseEntanglement
	next.Result = nil
	next.Failure = nil
	next.Completed = false
	next.StartedAt = now

	e.logger.Debug("run started", "run_id", next.RunID, "bits", next.Input.Bits.String(), "gate_cutting", next.Input.GateCutting)
	e.emit(ctx, e.hooks.OnRunStart, domain.EventRunStarted, now, next)
	e.emit(ctx, e.hooks.OnPhaseEnter, domain.EventPhaseEntered, now, next)
	return next, nil
}

// Tick advances a running state by one phase. The tick delivered while in the
// last phase completes the run: the outcome is computed exactly once and the
// state returns to idle in the same transition.
func (e *Engine) Tick(ctx context.Context, state *domain.RunState) (*domain.RunState, error) {
	if state == nil || !state.Running() {
		return state, fmt.Errorf("tick: %w", domain.ErrNotRunning)
	}

	now := e.clock.Now()
	next := state.Snapshot()
	next.UpdatedAt = now

	if next.PhaseIndex < domain.LastPhase {
		next.PhaseIndex++
		e.logger.Debug("phase entered", "run_id", next.RunID, "phase", next.PhaseIndex.String())
		e.emit(ctx, e.hooks.OnPhaseEnter, domain.EventPhaseEntered, now, next)
		return next, nil
	}

	e.complete(next)
	e.emit(ctx, e.hooks.OnRunComplete, domain.EventRunCompleted, now, next)
	return next, nil
}

func (e *Engine) complete(next *domain.RunState) {
	next.PhaseIndex = domain.PhaseIdle
	next.Completed = true

	received, err := e.outcome.Compute(next.Input.Bits, next.Input.GateCutting)
	if err != nil {
		next.Result = nil
		next.Failure = domain.FailureFrom(err)
		if next.Failure == nil {
			e.logger.Error("outcome model failed", "run_id", next.RunID, "err", err)
			next.Failure = &domain.Failure{Kind: domain.FailureTransmission, Message: err.Error()}
		}
		e.logger.Debug("run completed", "run_id", next.RunID, "failure", next.Failure.Message)
		return
	}

	next.Failure = nil
	next.Result = &received
	e.logger.Debug("run completed", "run_id", next.RunID, "received", received.String())
}

// Render projects the state for presentation.
func (e *Engine) Render(state *domain.RunState) domain.View {
	if state == nil {
		state = domain.NewRunState(domain.Input{})
	}
	return domain.NewView(state)
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.Event), t domain.EventType, at time.Time, state *domain.RunState) {
	if hook == nil {
		return
	}
	hook(ctx, domain.NewEvent(t, at, state))
}
