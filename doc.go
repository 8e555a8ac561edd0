// Package recsort sorts files of fixed-size binary records by their int32 key
// with a parallel merge sort whose concurrency is capped by a thread budget.
//
// Each record is 100 bytes: a native-endian int32 key followed by a 96-byte
// payload that is carried along but never inspected. The whole file is sorted
// in memory; the sort is stable and its output does not depend on the number
// of threads.
//
// # Basic Usage
//
// Sorting a file:
//
//	stats, err := recsort.SortFile("in.dat", "out.dat",
//	    []recsort.SortOption{recsort.WithThreads(8)})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("sorted %d records with %d forks\n", stats.Records, stats.Forks)
//
// Sorting records already in memory:
//
//	recs, err := recsort.ReadFile("in.dat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	recsort.Sort(recs, recsort.WithThreads(4))
//
// # Scheduling
//
// The sort splits a range in half and offers each half to a shared Budget.
// A half that gets a slot runs on a new goroutine; a half that does not runs
// on the current goroutine. Acquisition never blocks, so an exhausted budget
// simply turns the rest of that subtree into a sequential merge sort. The
// parent waits for its forked halves, returns their slots, and merges.
//
// # Package Structure
//
//   - Sorting: executor.go (Executor, Sort, SortFile), scheduler.go (fork-join
//     dispatch), budget.go (Budget), merge.go (stable merge)
//   - Configuration: options.go (SortOption, FileOption, With* functions),
//     threads.go (ResolveThreads)
//   - Record files: record.go (Record), recordfile.go (ReadFile, WriteFile)
//   - Integrity: checksum.go (Fingerprint, Digest, CheckSorted, Verify)
//   - Platform: fallocate_*.go, fadvise_*.go, prefault_*.go
//   - Commands: cmd/psort (sorter), cmd/gen (sample files), cmd/bench (thread sweep)
package recsort
