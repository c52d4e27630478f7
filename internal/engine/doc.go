// Package engine is the host-facing heart of the device. It owns the game
// context, the scene manager and the button state, and advances them by
// wall-clock deltas handed in by a host.
//
// ARCHITECTURAL RULE: the Engine is synchronous and never touches storage or
// the network. Hosts drive it from their own loop (see Ticker) and decide
// where saves, sounds and events go.
package engine
