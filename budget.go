package recsort

import (
	"fmt"
	"sync/atomic"
)

// Budget is the shared count of additional goroutines a sort may still start.
//
// TryAcquire never blocks: when no slot is free the caller is expected to do
// the work itself. Every successful TryAcquire must be paired with exactly one
// Release, issued after the goroutine holding the slot has finished.
//
// Thread Safety: all methods are safe for concurrent use.
type Budget struct {
	available atomic.Int64
	max       int64

	// observe, if set, is called with the new value after every change.
	observe func(available int)
}

// NewBudget returns a budget with max free slots. Negative max is treated as 0.
func NewBudget(max int) *Budget {
	if max < 0 {
		max = 0
	}
	b := &Budget{max: int64(max)}
	b.available.Store(int64(max))
	return b
}

// TryAcquire takes one slot if any is free and reports whether it did.
func (b *Budget) TryAcquire() bool {
	for {
		old := b.available.Load()
		if old <= 0 {
			return false
		}
		if b.available.CompareAndSwap(old, old-1) {
			if b.observe != nil {
				b.observe(int(old - 1))
			}
			return true
		}
	}
}

// Release returns one slot. Releasing more slots than were acquired is a
// programming error and panics.
func (b *Budget) Release() {
	for {
		old := b.available.Load()
		if old >= b.max {
			panic(fmt.Sprintf("recsort: budget released above max (%d)", b.max))
		}
		if b.available.CompareAndSwap(old, old+1) {
			if b.observe != nil {
				b.observe(int(old + 1))
			}
			return
		}
	}
}

// Available returns the number of free slots at the time of the call.
func (b *Budget) Available() int {
	return int(b.available.Load())
}

// Max returns the number of slots the budget was created with.
func (b *Budget) Max() int {
	return int(b.max)
}
