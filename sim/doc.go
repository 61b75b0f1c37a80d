// Package sim provides the discrete-time simulation engine for boxsim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (waiting → serving → served | abandoned)
//   - simulator.go: the tick loop and its fixed phase order
//   - metrics.go: incremental statistics and the final cost figure
//
// # Architecture
//
// The simulator advances in fixed one-second ticks. Each Step runs four
// phases in order: arrival admission, box assignment, service completion,
// and the abandonment sweep. Randomness comes from a VariateSource
// (variates.go) backed by a per-subsystem PartitionedRNG (rng.go), so runs
// are reproducible from a single seed and tests can inject scripted draws.
//
// Presentation is deliberately outside this package: consumers poll
// Snapshot() between steps and render what they find (see package report).
package sim
