package superdense

// Version is the released version of the simulator.
const Version = "0.3.0"
