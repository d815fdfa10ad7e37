// Package sim provides the core turn-based Tailorshop simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - actions.go: the controllable decision variables and their
//     clamp-and-step validation grids
//   - state.go: the engine-computed economic state and its invariants
//   - engine.go: the pure transition function and the stateful engine
//     layered on top of it
//
// # Architecture
//
// Transition is a free, side-effect-free function of (noise tables,
// actions, previous actions, previous state). The Engine owns the noise
// tables and the current-state / last-actions bookkeeping; callers that
// want what-if exploration without committing a turn call Transition (or
// Engine.CalculateStep) directly.
//
// The simulation horizon is bounded by the length of the prepared noise
// tables (noise.go): fourteen fixed draws per table by default, or
// seed-derived uniform draws in randomized mode.
package sim
