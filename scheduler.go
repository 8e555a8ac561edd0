package recsort

import "sync/atomic"

// scheduler runs the budgeted fork-join merge sort for one Sort call.
//
// Ownership: every dispatch call owns its slice exclusively until it returns.
// Siblings are disjoint halves of their parent's slice, and the parent only
// touches its slice again (in merge) after both siblings have returned or
// been joined. No lock guards the records themselves.
type scheduler struct {
	budget   *Budget
	scratch  scratchPool
	maxDepth int // 0 means unlimited

	forks  atomic.Int64 // subproblems handed to a new goroutine
	inline atomic.Int64 // subproblems run inline after a failed acquire
	peak   atomic.Int64 // most budget slots held at once
}

func newScheduler(cfg *sortConfig, threads int) *scheduler {
	s := &scheduler{
		budget:   NewBudget(threads),
		maxDepth: cfg.maxForkDepth,
	}
	max := s.budget.Max()
	user := cfg.observer
	s.budget.observe = func(available int) {
		held := int64(max - available)
		for {
			old := s.peak.Load()
			if held <= old || s.peak.CompareAndSwap(old, held) {
				break
			}
		}
		if user != nil {
			user(available)
		}
	}
	return s
}

// dispatch sorts recs. depth is 0 for the whole store.
func (s *scheduler) dispatch(recs []Record, depth int) {
	if len(recs) < 2 {
		return
	}

	// Same split as l + (r-l)/2 on inclusive bounds: the left half gets the
	// extra element when the length is odd.
	mid := (len(recs)-1)/2 + 1

	left := s.fork(recs[:mid], depth+1)
	right := s.fork(recs[mid:], depth+1)

	s.join(left)
	s.join(right)

	merge(recs, mid, &s.scratch)
}

// fork runs dispatch(recs) on a new goroutine if a budget slot is free and
// returns a channel closed on completion. Otherwise it sorts recs on the
// calling goroutine and returns nil.
func (s *scheduler) fork(recs []Record, depth int) <-chan struct{} {
	if s.maxDepth > 0 && depth > s.maxDepth {
		s.dispatch(recs, depth)
		return nil
	}
	if !s.budget.TryAcquire() {
		s.inline.Add(1)
		s.dispatch(recs, depth)
		return nil
	}

	s.forks.Add(1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.dispatch(recs, depth)
	}()
	return done
}

// join waits for a forked subproblem and gives its slot back.
// A nil handle means the subproblem ran inline and holds no slot.
func (s *scheduler) join(done <-chan struct{}) {
	if done == nil {
		return
	}
	<-done
	s.budget.Release()
}
