// Package sim owns the authoritative game state and the fixed-step
// simulation that advances it.
//
// The step is single-threaded and never fails. Randomness comes only from
// the GameContext's Rng, which is seeded from a Timestamp, so a run is fully
// reproducible from its starting state and the timestamps it is fed.
package sim
