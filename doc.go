/*
Package superdense is an interactive simulation of the superdense coding protocol.

A sender picks two classical bits, the simulator walks through the four protocol
phases (Entanglement, Encoding, Transmission, Decoding) on a fixed cadence and
finally reports the bits decoded by the receiver. When "gate cutting" is enabled
the channel fails with a fixed probability, modelling the loss of the X/Z gates.

# Concept

The simulation is split in a pure transition core (Engine) and a timed driver
(pkg/runner). The Engine never holds state: every call takes a RunState and
returns the next one. Hosts (TUI, HTTP, MCP, headless CLI) only feed inputs,
call Start and render the View produced from the current state.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/superdense"
		"github.com/aretw0/superdense/pkg/domain"
		"github.com/aretw0/superdense/pkg/runner"
	)

	func main() {
		eng := superdense.New()
		r := runner.New(eng)

		ctx := context.Background()
		if err := r.SetInput(ctx, domain.Input{Bits: domain.NewBitPair(true, false)}); err != nil {
			log.Fatal(err)
		}
		if err := r.Start(ctx); err != nil {
			log.Fatal(err)
		}

		final, err := r.Wait(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("received:", eng.Render(final).ReceivedBits)
	}
*/
package superdense
