// Package round implements the timed conversion round engine.
//
// A round asks the player to convert one generated value between binary and
// hexadecimal before a time limit runs out. The engine is a small state machine:
//
//	PENDING -> RUNNING -> {SUCCEEDED, TIMED_OUT, ABORTED}
//
// It owns no goroutines or timers. Callers poll Tick from their own redraw loop
// and feed input through Submit; both read an injected monotonic clock. A Round
// must not be mutated concurrently.
package round
