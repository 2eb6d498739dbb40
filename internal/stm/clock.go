package stm

import "go.uber.org/atomic"

// GlobalVersionClock is the single monotonically increasing counter shared by
// a region. Every transaction reads it at begin; every committing writer
// advances it exactly once, at most.
type GlobalVersionClock struct {
	value atomic.Uint64
}

// Load returns the current clock value with acquire ordering.
func (c *GlobalVersionClock) Load() uint64 {
	return c.value.Load()
}

// Increment advances the clock by one and returns the new value, the write
// version a committing transaction will publish.
func (c *GlobalVersionClock) Increment() uint64 {
	return c.value.Add(1)
}
