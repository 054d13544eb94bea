package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/superdense/pkg/adapters/system"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
)

// ErrClockDriven is returned by Tick when the runner owns a ticker.
var ErrClockDriven = errors.New("runner: phases are driven by the clock")

// Observer receives every transition. Observers run in transition order, one at a
// time. They may read the runner (Snapshot, View, Active) but must not call
// mutating Runner methods from the same goroutine.
type Observer func(*domain.Event)

// Runner owns a RunState and moves it through the protocol phases.
type Runner struct {
	engine ports.StatelessEngine
	clock  ports.Clock
	period time.Duration
	manual bool
	logger *slog.Logger

	mu        sync.Mutex
	state     *domain.RunState
	ticker    ports.Ticker
	idle      chan struct{}
	observers map[int]Observer
	nextObs   int

	// Events are numbered under mu and delivered strictly by number.
	// Delivery never holds mu, so observers can read the runner.
	published uint64
	notifyMu  sync.Mutex
	turn      *sync.Cond
	delivered uint64
}

// New creates a Runner around a stateless engine.
func New(engine ports.StatelessEngine, opts ...Option) *Runner {
	r := &Runner{
		engine:    engine,
		clock:     system.Clock{},
		period:    domain.DefaultTickPeriod,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     domain.NewRunState(domain.Input{}),
		observers: make(map[int]Observer),
	}
	r.turn = sync.NewCond(&r.notifyMu)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns a copy of the current state.
func (r *Runner) Snapshot() *domain.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Snapshot()
}

// View renders the current state.
func (r *Runner) View() domain.View {
	return r.engine.Render(r.Snapshot())
}

// Active reports whether a run is in progress.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Running()
}

// SetInput replaces the selection. Setting the current value again is a no-op.
func (r *Runner) SetInput(ctx context.Context, input domain.Input) error {
	r.mu.Lock()
	if r.state.Running() {
		r.mu.Unlock()
		return domain.ErrRunInProgress
	}
	if r.state.Input == input {
		r.mu.Unlock()
		return nil
	}
	next, err := r.engine.Configure(ctx, r.state, input)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.state = next
	r.logger.Debug("input changed", "bits", input.Bits.String(), "gate_cutting", input.GateCutting)
	r.publish(domain.EventInputChanged)
	return nil
}

// SelectBit sets one of the two classical bits.
func (r *Runner) SelectBit(ctx context.Context, slot domain.Slot, b domain.Bit) error {
	input := r.Snapshot().Input
	input.Bits = input.Bits.With(slot, b)
	return r.SetInput(ctx, input)
}

// SetGateCutting toggles the fault mode.
func (r *Runner) SetGateCutting(ctx context.Context, enabled bool) error {
	input := r.Snapshot().Input
	input.GateCutting = enabled
	return r.SetInput(ctx, input)
}

// Start begins a run with the current input and arms the phase ticker.
// An incomplete selection records a validation failure and returns ErrBitsRequired.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.state.Running() {
		r.mu.Unlock()
		return domain.ErrRunInProgress
	}

	next, err := r.engine.Start(ctx, r.state)
	if err != nil {
		if next != nil && errors.Is(err, domain.ErrBitsRequired) {
			r.state = next
			r.logger.Info("run rejected", "err", err)
			r.publish(domain.EventValidationFailed)
			return err
		}
		r.mu.Unlock()
		return err
	}

	r.state = next
	r.idle = make(chan struct{})
	if !r.manual {
		r.ticker = r.clock.NewTicker(r.period)
		go r.drive(r.ticker)
	}
	r.logger.Info("run started", "run_id", next.RunID, "bits", next.Input.Bits.String(), "gate_cutting", next.Input.GateCutting)
	r.publish(domain.EventRunStarted)
	return nil
}

// Tick advances a manual run by one phase.
func (r *Runner) Tick(ctx context.Context) error {
	if !r.manual {
		return ErrClockDriven
	}
	_, err := r.advance(ctx)
	return err
}

// Drain ticks a manual run to completion, or waits for a timed one.
func (r *Runner) Drain(ctx context.Context) (*domain.RunState, error) {
	if !r.manual {
		return r.Wait(ctx)
	}
	for {
		if err := ctx.Err(); err != nil {
			return r.Snapshot(), err
		}
		done, err := r.advance(ctx)
		if errors.Is(err, domain.ErrNotRunning) {
			return r.Snapshot(), nil
		}
		if err != nil {
			return r.Snapshot(), err
		}
		if done {
			return r.Snapshot(), nil
		}
	}
}

// Wait blocks until the current run completes and returns the final state.
// It returns immediately when no run is active.
func (r *Runner) Wait(ctx context.Context) (*domain.RunState, error) {
	r.mu.Lock()
	if !r.state.Running() {
		s := r.state.Snapshot()
		r.mu.Unlock()
		return s, nil
	}
	idle := r.idle
	r.mu.Unlock()

	select {
	case <-idle:
		return r.Snapshot(), nil
	case <-ctx.Done():
		return r.Snapshot(), ctx.Err()
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (r *Runner) Subscribe(obs Observer) func() {
	r.mu.Lock()
	id := r.addObserver(obs)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.observers, id)
			r.mu.Unlock()
		})
	}
}

// Events returns a buffered channel of transitions. Events are dropped when the
// buffer is full. The cancel function closes the channel.
func (r *Runner) Events(buffer int) (<-chan *domain.Event, func()) {
	ch := make(chan *domain.Event, buffer)
	var (
		chMu   sync.Mutex
		closed bool
	)

	r.mu.Lock()
	id := r.addObserver(func(evt *domain.Event) {
		chMu.Lock()
		defer chMu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- evt:
		default:
			r.logger.Warn("event dropped", "type", evt.Type, "run_id", evt.RunID)
		}
	})
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.observers, id)
			r.mu.Unlock()

			chMu.Lock()
			closed = true
			close(ch)
			chMu.Unlock()
		})
	}
}

func (r *Runner) addObserver(obs Observer) int {
	id := r.nextObs
	r.nextObs++
	r.observers[id] = obs
	return id
}

// drive consumes one ticker until the run it belongs to completes.
func (r *Runner) drive(t ports.Ticker) {
	for range t.C() {
		done, err := r.advance(context.Background())
		if err != nil {
			r.logger.Error("tick failed", "err", err)
			r.abandon(t)
			return
		}
		if done {
			return
		}
	}
}

// abandon stops a run whose tick failed: the ticker is released, the state
// returns to idle and waiters are woken.
func (r *Runner) abandon(t ports.Ticker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.Stop()
	if r.ticker == t {
		r.ticker = nil
	}
	if r.state.Running() {
		next := r.state.Snapshot()
		next.PhaseIndex = domain.PhaseIdle
		r.state = next
	}
	if r.idle != nil {
		close(r.idle)
		r.idle = nil
	}
}

// advance applies one tick and reports whether the run completed.
func (r *Runner) advance(ctx context.Context) (bool, error) {
	r.mu.Lock()
	next, err := r.engine.Tick(ctx, r.state)
	if err != nil {
		r.mu.Unlock()
		return false, err
	}
	r.state = next

	if next.Running() {
		r.logger.Debug("phase entered", "run_id", next.RunID, "phase", next.PhaseIndex.String())
		r.publish(domain.EventPhaseEntered)
		return false, nil
	}

	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
	idle := r.idle
	r.idle = nil
	if next.Failure != nil {
		r.logger.Info("run completed", "run_id", next.RunID, "failure", next.Failure.Message)
	} else {
		r.logger.Info("run completed", "run_id", next.RunID, "received", next.Result.String())
	}
	r.publish(domain.EventRunCompleted)
	if idle != nil {
		close(idle)
	}
	return true, nil
}

// publish must be called with mu held. It releases mu, waits for earlier
// events to be delivered, then delivers this one.
func (r *Runner) publish(t domain.EventType) {
	evt := domain.NewEvent(t, r.state.UpdatedAt, r.state)
	if evt.Timestamp.IsZero() {
		evt.Timestamp = r.clock.Now()
	}
	observers := make([]Observer, 0, len(r.observers))
	for id := 0; id < r.nextObs; id++ {
		if obs, ok := r.observers[id]; ok {
			observers = append(observers, obs)
		}
	}

	seq := r.published
	r.published++
	r.mu.Unlock()

	r.notifyMu.Lock()
	for r.delivered != seq {
		r.turn.Wait()
	}
	r.notifyMu.Unlock()

	for _, obs := range observers {
		obs(evt)
	}

	r.notifyMu.Lock()
	r.delivered++
	r.turn.Broadcast()
	r.notifyMu.Unlock()
}
