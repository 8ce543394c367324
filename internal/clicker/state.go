// Package clicker implements the dessert clicker game rules: a single owned
// GameState advanced by sales, reset on demand, and published to observers.
// It performs no I/O; the platform layer renders state and dispatches shares.
package clicker

// GameState is the observable state of one bakery session.
type GameState struct {
	UnitsSold       int    // Cumulative desserts sold since the last reset
	Revenue         int    // Cumulative revenue since the last reset
	CurrentPrice    int    // Price of the active tier
	CurrentImageRef string // Image reference of the active tier
	TierIndex       int    // Index of the active tier in the table
}

// Listener receives every published state in production order.
type Listener func(GameState)
