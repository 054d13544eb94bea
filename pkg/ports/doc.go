/*
Package ports defines the driven ports (interfaces) for the superdense simulator.

These interfaces decouple the core logic from timers, randomness and external
transports, so the state machine can be driven by a real ticker, by UI messages
or by a test clock.

# Key Interfaces

  - StatelessEngine: Pure transition rules over a RunState (Configure, Start, Tick, Render).
  - RandomSource: Uniform samples consumed by the outcome model.
  - Clock / Ticker: Time source and recurring tick used by the runner.
  - EventPublisher: Fan-out of run events to external subscribers (e.g. Redis).
*/
package ports
