/*
Package outcome computes what the receiver decodes at the end of a run.

The channel is ideal unless gate cutting is enabled, in which case a single
uniform sample decides between delivering the original bits and a simulated
transmission fault. No quantum state is simulated; the gate table is fixed
reference data.
*/
package outcome
