package recsort

import (
	"fmt"
	"time"
)

// Stats describes one completed sort.
type Stats struct {
	Records         int           // records sorted
	Threads         int           // budget size the sort ran with
	Forks           int64         // subproblems run on their own goroutine
	Inline          int64         // subproblems run inline because the budget was exhausted
	PeakConcurrency int           // most budget slots held at the same time
	Elapsed         time.Duration // wall time of the sort itself
}

// Executor sorts record stores with a fixed configuration.
//
// Each Sort call creates its own Budget, so one Executor may run several
// sorts concurrently; the thread limit applies to each sort separately.
//
// Usage:
//
//	exec := recsort.NewExecutor(recsort.WithThreads(8))
//	stats := exec.Sort(records)
type Executor struct {
	cfg     *sortConfig
	threads int
}

// NewExecutor creates an Executor. Without WithThreads the budget is one
// slot per logical core.
func NewExecutor(opts ...SortOption) *Executor {
	cfg := defaultSortConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Executor{
		cfg:     cfg,
		threads: ResolveThreads(cfg.threads),
	}
}

// Threads returns the resolved budget size.
func (e *Executor) Threads() int {
	return e.threads
}

// Sort sorts recs in place by Key. The sort is stable, and the output is
// identical for every thread count.
func (e *Executor) Sort(recs []Record) Stats {
	s := newScheduler(e.cfg, e.threads)

	start := time.Now()
	s.dispatch(recs, 0)
	elapsed := time.Since(start)

	if avail := s.budget.Available(); avail != s.budget.Max() {
		panic(fmt.Sprintf("recsort: %d budget slots leaked", s.budget.Max()-avail))
	}

	return Stats{
		Records:         len(recs),
		Threads:         e.threads,
		Forks:           s.forks.Load(),
		Inline:          s.inline.Load(),
		PeakConcurrency: int(s.peak.Load()),
		Elapsed:         elapsed,
	}
}

// Sort sorts recs in place with a one-off Executor built from opts.
func Sort(recs []Record, opts ...SortOption) Stats {
	return NewExecutor(opts...).Sort(recs)
}

// SortFile reads the record file at in, sorts it, and writes the result to out.
// The output file is only created once the input has been read and sorted.
func SortFile(in, out string, sortOpts []SortOption, fileOpts ...FileOption) (Stats, error) {
	recs, err := ReadFile(in, fileOpts...)
	if err != nil {
		return Stats{}, fmt.Errorf("read input: %w", err)
	}

	stats := Sort(recs, sortOpts...)

	if err := WriteFile(out, recs, fileOpts...); err != nil {
		return stats, fmt.Errorf("write output: %w", err)
	}
	return stats, nil
}
