/*
Package domain contains the core domain models of the superdense coding simulator.

It defines the message being transmitted, the fixed protocol timeline and the
mutable run state driven by the runner. This package is kept pure and free of
external dependencies like I/O, timers or randomness, following Hexagonal
Architecture principles.

# Key Entities

  - Bit / BitPair: The two classical bits selected by the user.
  - Phase: One step of the protocol timeline (Entanglement, Encoding, Transmission, Decoding).
  - RunState: Snapshot of a single simulation run (phase index, result, failure).
  - Encoding: Static reference row mapping a BitPair to the X/Z gates and the Bell state.
  - View: Presentation-ready projection of a RunState, shared by every host.
*/
package domain
