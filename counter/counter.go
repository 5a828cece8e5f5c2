// Package counter provides a lock-free counter that wraps around at a fixed
// ceiling.
package counter

import (
	"log"
	"sync/atomic"
)

// Counter hands out values in [0, ceiling) in order, starting over at zero
// once the ceiling is reached. A Counter is safe for concurrent use.
type Counter struct {
	value   atomic.Uint64
	ceiling uint64
}

// New creates a Counter that wraps at ceiling.
func New(ceiling uint64) *Counter {
	if ceiling == 0 {
		log.Panic("counter: ceiling must be positive")
	}

	return &Counter{ceiling: ceiling}
}

// Next returns the current value and advances the counter.
//
// Callers that lose the compare-and-swap race re-read and retry. No caller
// ever waits on another.
func (c *Counter) Next() uint64 {
	for {
		current := c.value.Load()

		next := current + 1
		if next >= c.ceiling {
			next = 0
		}

		if c.value.CompareAndSwap(current, next) {
			return current
		}
	}
}

// Peek returns the value the next call to Next will return.
func (c *Counter) Peek() uint64 {
	return c.value.Load()
}

// Ceiling returns the exclusive upper bound of the counter.
func (c *Counter) Ceiling() uint64 {
	return c.ceiling
}
