// Psort sorts a file of 100-byte records by their int32 key.
//
// Usage:
//
//	psort [flags] <input_file> <output_file> <num_threads>
//
// num_threads is the number of goroutines the sort may run in addition to the
// main one. 0, a negative value or anything that is not a number selects the
// logical core count.
//
// Flags:
//
//	-verify          Check order and record multiset of the output (exit 3 on failure)
//	-truncate        Drop a trailing partial record instead of failing
//	-max-fork-depth  Never fork below this recursion depth, 0 for no limit
//	-io-workers      Decode/encode goroutines, 0 for one per logical core
//	-stats           Print sort statistics to stdout
//
// Exit codes: 1 usage, 2 input or output error, 3 verification failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tamirms/recsort"
)

const (
	exitOK = iota
	exitUsage
	exitIO
	exitVerify
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("psort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: psort [flags] <input_file> <output_file> <num_threads>\n")
		fs.PrintDefaults()
	}
	verify := fs.Bool("verify", false, "check order and record multiset of the output")
	truncate := fs.Bool("truncate", false, "drop a trailing partial record instead of failing")
	maxDepth := fs.Int("max-fork-depth", 0, "never fork below this recursion depth (0 = no limit)")
	ioWorkers := fs.Int("io-workers", 0, "decode/encode goroutines (0 = one per logical core)")
	showStats := fs.Bool("stats", false, "print sort statistics")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() < 3 {
		fs.Usage()
		return exitUsage
	}
	in, out := fs.Arg(0), fs.Arg(1)

	// Unparsable counts fall back to auto like a zero would.
	threads, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		threads = 0
	}

	fileOpts := []recsort.FileOption{
		recsort.WithTrailingBytes(*truncate),
		recsort.WithIOWorkers(*ioWorkers),
	}

	start := time.Now()
	recs, err := recsort.ReadFile(in, fileOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "psort: %v\n", err)
		return exitIO
	}
	readTime := time.Since(start)

	var before recsort.Fingerprint
	if *verify {
		before = recsort.FingerprintOf(recs)
	}

	stats := recsort.Sort(recs,
		recsort.WithThreads(threads),
		recsort.WithMaxForkDepth(*maxDepth),
	)

	if *verify {
		if err := recsort.Verify(before, recs); err != nil {
			fmt.Fprintf(stderr, "psort: verification failed: %v\n", err)
			return exitVerify
		}
	}

	writeStart := time.Now()
	if err := recsort.WriteFile(out, recs, fileOpts...); err != nil {
		fmt.Fprintf(stderr, "psort: %v\n", err)
		return exitIO
	}
	writeTime := time.Since(writeStart)

	if *showStats {
		printStats(stdout, stats, readTime, writeTime)
	}
	return exitOK
}

func printStats(w io.Writer, s recsort.Stats, readTime, writeTime time.Duration) {
	size := uint64(s.Records) * recsort.RecordSize
	rate := 0.0
	if s.Elapsed > 0 {
		rate = float64(s.Records) / s.Elapsed.Seconds()
	}
	fmt.Fprintf(w, "records:     %s (%s)\n", humanize.Comma(int64(s.Records)), humanize.IBytes(size))
	fmt.Fprintf(w, "threads:     %d\n", s.Threads)
	fmt.Fprintf(w, "forks:       %s\n", humanize.Comma(s.Forks))
	fmt.Fprintf(w, "inline:      %s\n", humanize.Comma(s.Inline))
	fmt.Fprintf(w, "peak:        %d\n", s.PeakConcurrency)
	fmt.Fprintf(w, "read:        %s\n", readTime.Round(time.Microsecond))
	fmt.Fprintf(w, "sort:        %s (%s records/s)\n", s.Elapsed.Round(time.Microsecond), humanize.SIWithDigits(rate, 2, ""))
	fmt.Fprintf(w, "write:       %s\n", writeTime.Round(time.Microsecond))
}
