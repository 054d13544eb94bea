package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/aretw0/superdense/pkg/runner"
)

// SimulateOptions configures a headless run.
type SimulateOptions struct {
	// Bits is the two character message, '-' for an unset slot.
	Bits        string
	GateCutting bool
	// JSON prints NDJSON events instead of text lines.
	JSON bool
	// Instant skips the phase delay.
	Instant bool
	Out     io.Writer
	Runner  []runner.Option
}

type eventHandler interface {
	Handle(*domain.Event)
	Err() error
}

// RunHeadless performs one run and prints every transition.
// A validation failure returns an ExitError with code 1; a transmission fault
// is a normal outcome and returns nil.
func RunHeadless(ctx context.Context, engine ports.StatelessEngine, opts SimulateOptions) error {
	pair, err := domain.ParseBitPair(opts.Bits)
	if err != nil {
		return fmt.Errorf("invalid --bits: %w", err)
	}
	input := domain.Input{Bits: pair, GateCutting: opts.GateCutting}

	handler := newEventHandler(opts)

	runOpts := append(append([]runner.Option{}, opts.Runner...), runner.WithObserver(handler.Handle))
	if opts.Instant {
		_, _, err = runner.Simulate(ctx, engine, input, runOpts...)
	} else {
		err = runTimed(ctx, engine, input, runOpts)
	}

	if errors.Is(err, domain.ErrBitsRequired) {
		return &ExitError{Code: 1, Err: err}
	}
	if err != nil {
		return err
	}
	return handler.Err()
}

func newEventHandler(opts SimulateOptions) eventHandler {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.JSON {
		return runner.NewJSONHandler(out)
	}
	return runner.NewTextHandler(out)
}

func runTimed(ctx context.Context, engine ports.StatelessEngine, input domain.Input, opts []runner.Option) error {
	r := runner.New(engine, append(opts, runner.WithInput(input))...)
	if err := r.Start(ctx); err != nil {
		return err
	}
	_, err := r.Wait(ctx)
	return err
}
