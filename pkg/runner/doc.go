/*
Package runner drives the superdense engine on a fixed cadence.

The Engine is stateless: it maps one RunState to the next. The Runner owns the
current state, serialises every transition behind a mutex and arms exactly one
ticker per run. Each transition is published to observers as a domain.Event
carrying a snapshot of the new state.

# Key Components

  - Runner: holds the state, accepts input changes and starts runs.
  - Observer: callback invoked after every transition, in transition order.
  - TextHandler / JSONHandler: observers that print events for headless use.

# Usage

	r := runner.New(engine, runner.WithObserver(runner.NewTextHandler(os.Stdout).Handle))

	_ = r.SetInput(ctx, domain.Input{Bits: domain.NewBitPair(true, true)})
	if err := r.Start(ctx); err != nil {
		log.Fatal(err)
	}
	final, _ := r.Wait(ctx)

In manual mode (WithManualTicks) no ticker is armed and the caller advances
the run with Tick or Drain. Tests and the "instant" CLI flag use it.
*/
package runner
