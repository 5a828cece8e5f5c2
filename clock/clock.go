// Package clock supplies the millisecond time source used for the timestamp
// block of a token.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock reports the current time in milliseconds since the Unix epoch.
type Clock interface {
	NowMs() int64
}

// Func adapts a plain function to the Clock interface.
type Func func() int64

// NowMs calls f.
func (f Func) NowMs() int64 {
	return f()
}

// Fixed returns a Clock that always reports ms.
func Fixed(ms int64) Clock {
	return Func(func() int64 { return ms })
}

// Monotonic reads the wall clock but never reports a value smaller than one
// it has already reported. If the system clock steps backwards, the last
// reported value is repeated until the wall clock catches up.
type Monotonic struct {
	now  func() int64
	last atomic.Int64
}

// NewMonotonic creates a Monotonic clock backed by time.Now.
func NewMonotonic() *Monotonic {
	return newMonotonicFrom(func() int64 { return time.Now().UnixMilli() })
}

func newMonotonicFrom(now func() int64) *Monotonic {
	return &Monotonic{now: now}
}

// NowMs returns the current epoch milliseconds, pinned to the high-water
// mark.
func (c *Monotonic) NowMs() int64 {
	ms := c.now()

	for {
		last := c.last.Load()
		if ms <= last {
			return last
		}

		if c.last.CompareAndSwap(last, ms) {
			return ms
		}
	}
}
