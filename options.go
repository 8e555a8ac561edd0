package recsort

// SortOption is a functional option for configuring sorts.
type SortOption func(*sortConfig)

// FileOption is a functional option for configuring record file I/O.
type FileOption func(*fileConfig)

type sortConfig struct {
	threads      int // <= 0 means one per logical core
	maxForkDepth int // 0 means no limit
	observer     func(available int)
}

type fileConfig struct {
	workers       int  // <= 0 means one per logical core
	trailingBytes bool // true to drop a trailing partial record instead of failing
}

func defaultSortConfig() *sortConfig {
	return &sortConfig{}
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{}
}

// WithThreads sets the number of goroutines a sort may run concurrently in
// addition to the calling goroutine. Zero or negative selects the logical
// core count (see ResolveThreads).
func WithThreads(n int) SortOption {
	return func(c *sortConfig) {
		c.threads = n
	}
}

// WithMaxForkDepth stops the scheduler from offering work to other goroutines
// below the given recursion depth. Deeper subproblems always run inline.
// Zero (the default) means every split may fork. The result never depends on
// this setting.
func WithMaxForkDepth(depth int) SortOption {
	return func(c *sortConfig) {
		if depth < 0 {
			depth = 0
		}
		c.maxForkDepth = depth
	}
}

// WithBudgetObserver installs fn to be called with the number of free budget
// slots after every acquire and release. fn runs on the sorting goroutines
// and must be safe for concurrent use.
func WithBudgetObserver(fn func(available int)) SortOption {
	return func(c *sortConfig) {
		c.observer = fn
	}
}

// WithIOWorkers sets the number of goroutines used to decode and encode
// record files. Zero or negative selects the logical core count.
func WithIOWorkers(n int) FileOption {
	return func(c *fileConfig) {
		c.workers = n
	}
}

// WithTrailingBytes controls what ReadFile does with a file whose size is not
// a multiple of RecordSize. By default such files are rejected with
// ErrTrailingBytes; with allow set the incomplete final record is dropped.
func WithTrailingBytes(allow bool) FileOption {
	return func(c *fileConfig) {
		c.trailingBytes = allow
	}
}
