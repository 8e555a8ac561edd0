// Bench measures recsort throughput and memory across thread budgets.
//
// The same generated input is sorted -runs times for every thread count, and
// the mean sort time is reported with a 95% confidence interval. The output
// digest is printed per thread count; it must be identical in every row.
//
// Usage:
//
//	go run ./cmd/bench -n 1000000 -threads 1,2,4,8 -runs 20
//
// Flags:
//
//	-n           Number of records (default: 1,000,000)
//	-threads     Comma-separated thread counts (default: 1,2,3,4,5,6,7,8)
//	-runs        Sorts per thread count (default: 10)
//	-keys        Key span, 0 for the full int32 range (default: 0)
//	-file        Also time ReadFile and WriteFile through a temp file (default: false)
//	-cpuprofile  Write a CPU profile covering the sort runs
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"runtime/metrics"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tamirms/recsort"
	"github.com/tamirms/recsort/internal/recgen"
)

// result is the summary of all runs for one thread count.
type result struct {
	threads  int
	mean     time.Duration
	ci95     time.Duration
	forks    int64
	inline   int64
	peak     int
	heapPeak uint64
	digest   uint64
}

func main() {
	nFlag := flag.Int("n", 1_000_000, "number of records")
	threadsFlag := flag.String("threads", "1,2,3,4,5,6,7,8", "comma-separated thread counts")
	runsFlag := flag.Int("runs", 10, "sorts per thread count")
	keysFlag := flag.Uint("keys", 0, "key span (0 = full int32 range)")
	fileFlag := flag.Bool("file", false, "also time ReadFile and WriteFile")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (sort runs only)")
	flag.Parse()

	threadCounts, err := parseThreads(*threadsFlag)
	if err != nil {
		fmt.Printf("Invalid -threads: %v\n", err)
		os.Exit(1)
	}
	if *runsFlag < 1 || *nFlag < 0 {
		fmt.Println("-runs must be positive and -n must not be negative")
		os.Exit(1)
	}

	fmt.Println("Generating records...")
	input := recgen.Generate(recgen.Config{
		Records: *nFlag,
		KeySpan: uint32(*keysFlag),
		Seed:    0x1234,
	})

	if *fileFlag {
		if err := benchFile(input); err != nil {
			fmt.Printf("File benchmark failed: %v\n", err)
			os.Exit(2)
		}
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	work := make([]recsort.Record, len(input))
	results := make([]result, 0, len(threadCounts))
	for _, threads := range threadCounts {
		fmt.Printf("Sorting with %d threads...\n", threads)
		results = append(results, benchThreads(input, work, threads, *runsFlag))
	}

	printResults(len(input), *runsFlag, results)
}

func parseThreads(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("thread count %d must be positive", n)
		}
		out = append(out, n)
	}
	return out, nil
}

// benchThreads sorts a fresh copy of input runs times with the given budget.
func benchThreads(input, work []recsort.Record, threads, runs int) result {
	exec := recsort.NewExecutor(recsort.WithThreads(threads))
	times := make([]time.Duration, runs)
	res := result{threads: threads}

	for i := range runs {
		copy(work, input)

		runtime.GC()
		sampler := startHeapSampler()
		stats := exec.Sort(work)
		res.heapPeak = max(res.heapPeak, sampler.stop())

		times[i] = stats.Elapsed
		res.forks += stats.Forks
		res.inline += stats.Inline
		res.peak = max(res.peak, stats.PeakConcurrency)
	}

	res.forks /= int64(runs)
	res.inline /= int64(runs)
	res.mean, res.ci95 = meanCI95(times)
	res.digest = recsort.Digest(work)
	return res
}

// meanCI95 returns the mean of ds and the half-width of its 95% confidence
// interval under a normal approximation.
func meanCI95(ds []time.Duration) (mean, ci time.Duration) {
	n := float64(len(ds))
	var sum float64
	for _, d := range ds {
		sum += float64(d)
	}
	avg := sum / n
	if len(ds) < 2 {
		return time.Duration(avg), 0
	}
	var sq float64
	for _, d := range ds {
		diff := float64(d) - avg
		sq += diff * diff
	}
	stddev := math.Sqrt(sq / (n - 1))
	return time.Duration(avg), time.Duration(1.96 * stddev / math.Sqrt(n))
}

// heapSampler tracks peak live heap above a baseline.
// Uses runtime/metrics instead of ReadMemStats to avoid stop-the-world pauses
// that distort the measured sort time.
type heapSampler struct {
	baseline uint64
	peak     atomic.Uint64
	done     chan struct{}
	stopped  chan struct{}
}

func readHeap() uint64 {
	samples := []metrics.Sample{{Name: "/memory/classes/heap/objects:bytes"}}
	metrics.Read(samples)
	return samples[0].Value.Uint64()
}

func startHeapSampler() *heapSampler {
	s := &heapSampler{
		baseline: readHeap(),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	s.peak.Store(s.baseline)
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.record(readHeap())
			}
		}
	}()
	return s
}

func (s *heapSampler) record(v uint64) {
	for {
		old := s.peak.Load()
		if v <= old || s.peak.CompareAndSwap(old, v) {
			return
		}
	}
}

// stop ends sampling and returns the peak heap growth in bytes.
func (s *heapSampler) stop() uint64 {
	close(s.done)
	<-s.stopped
	s.record(readHeap())
	return s.peak.Load() - s.baseline
}

// benchFile times a write and read of input through a temporary record file.
func benchFile(input []recsort.Record) error {
	tmpDir, err := os.MkdirTemp("", "recsort-bench-")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()
	path := filepath.Join(tmpDir, "bench.dat")

	start := time.Now()
	if err := recsort.WriteFile(path, input); err != nil {
		return err
	}
	writeTime := time.Since(start)

	start = time.Now()
	recs, err := recsort.ReadFile(path)
	if err != nil {
		return err
	}
	readTime := time.Since(start)

	if recsort.Digest(recs) != recsort.Digest(input) {
		return fmt.Errorf("file round trip changed the records")
	}

	size := uint64(len(input)) * recsort.RecordSize
	fmt.Printf("File I/O: write %s (%s/s), read %s (%s/s)\n",
		writeTime.Round(time.Millisecond), humanize.IBytes(uint64(float64(size)/writeTime.Seconds())),
		readTime.Round(time.Millisecond), humanize.IBytes(uint64(float64(size)/readTime.Seconds())))
	return nil
}

func printResults(n, runs int, results []result) {
	fmt.Printf("\n")
	fmt.Printf("Records: %s (%s), runs per row: %d, GOMAXPROCS: %d\n\n",
		humanize.Comma(int64(n)), humanize.IBytes(uint64(n)*recsort.RecordSize), runs, runtime.GOMAXPROCS(0))
	fmt.Printf("╔═════════╦════════════════════════╦══════════╦══════════╦══════╦════════════╦══════════════════╗\n")
	fmt.Printf("║ Threads ║ Mean time (95%% CI)     ║ Forks    ║ Inline   ║ Peak ║ Peak heap  ║ Digest           ║\n")
	fmt.Printf("╠═════════╬════════════════════════╬══════════╬══════════╬══════╬════════════╬══════════════════╣\n")
	var base time.Duration
	for i, r := range results {
		if i == 0 {
			base = r.mean
		}
		timeStr := fmt.Sprintf("%.2fms ± %.2f", float64(r.mean)/1e6, float64(r.ci95)/1e6)
		fmt.Printf("║ %7d ║ %-22s ║ %8d ║ %8d ║ %4d ║ %10s ║ %016x ║\n",
			r.threads, timeStr, r.forks, r.inline, r.peak, humanize.IBytes(r.heapPeak), r.digest)
	}
	fmt.Printf("╚═════════╩════════════════════════╩══════════╩══════════╩══════╩════════════╩══════════════════╝\n")

	if len(results) > 1 && base > 0 {
		fmt.Printf("\nSpeedup vs %d thread(s):", results[0].threads)
		for _, r := range results[1:] {
			fmt.Printf(" %d→%.2fx", r.threads, float64(base)/float64(r.mean))
		}
		fmt.Printf("\n")
	}

	for _, r := range results[1:] {
		if r.digest != results[0].digest {
			fmt.Printf("\nWARNING: output with %d threads differs from %d threads\n", r.threads, results[0].threads)
		}
	}
}
