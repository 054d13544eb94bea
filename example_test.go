package superdense_test

import (
	"context"
	"fmt"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/aretw0/superdense/pkg/runner"
)

// ExampleNew walks one run through the stateless engine by hand.
func ExampleNew() {
	eng := superdense.New(superdense.WithRandomSource(outcome.AlwaysSucceed))
	ctx := context.Background()

	state := domain.NewRunState(domain.Input{Bits: domain.NewBitPair(true, true)})
	state, _ = eng.Start(ctx, state)
	for state.Running() {
		fmt.Println(state.PhaseIndex)
		state, _ = eng.Tick(ctx, state)
	}
	fmt.Println("received:", state.Result)
	// Output:
	// Entanglement
	// Encoding
	// Transmission
	// Decoding
	// received: 11
}

// Example_runner drives a run with the runner and prints every transition.
func Example_runner() {
	eng := superdense.New(superdense.WithRandomSource(outcome.FixedSource(0.9)))
	handler := runner.NewTextHandler(nil)

	_, _, err := runner.Simulate(context.Background(), eng,
		domain.Input{Bits: domain.NewBitPair(false, true), GateCutting: true},
		runner.WithObserver(handler.Handle),
	)
	fmt.Println("err:", err)
	// Output:
	// [1/4] Entanglement: Create Bell state Φ⁺
	// [2/4] Encoding: Apply X/Z gates based on bits
	// [3/4] Transmission: Send qubit A to receiver
	// [4/4] Decoding: Perform Bell measurement
	// Original bits: 01  Received bits: --  Error: Transmission Error due to gate usage cut.
	// err: <nil>
}
