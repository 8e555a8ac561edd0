// Gen writes a sample record file for psort.
//
// Usage:
//
//	go run ./cmd/gen -n 1000000 -o sample_1000000.dat -keys 1000 -order random
//
// Flags:
//
//	-n       Number of records (default: 1,000,000)
//	-o       Output path (default: sample_<n>.dat)
//	-keys    Key span; keys lie in [0, keys), 0 for the full int32 range (default: 0)
//	-order   Key order: random, sorted or reversed (default: random)
//	-seed    Hash seed (default: 0x1234)
//	-workers Encoding goroutines, 0 for one per logical core (default: 0)
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tamirms/recsort"
	"github.com/tamirms/recsort/internal/recgen"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 1_000_000, "number of records")
	out := fs.String("o", "", "output path (default sample_<n>.dat)")
	keys := fs.Uint("keys", 0, "key span, 0 for the full int32 range")
	order := fs.String("order", "random", "key order: random, sorted or reversed")
	seed := fs.Uint("seed", 0x1234, "hash seed")
	workers := fs.Int("workers", 0, "encoding goroutines (0 = one per logical core)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *n < 0 {
		fmt.Fprintf(stderr, "gen: -n must not be negative\n")
		return 1
	}
	if uint64(*keys) > math.MaxUint32 {
		fmt.Fprintf(stderr, "gen: -keys must fit in 32 bits\n")
		return 1
	}
	ord, err := recgen.ParseOrder(*order)
	if err != nil {
		fmt.Fprintf(stderr, "gen: %v\n", err)
		return 1
	}
	path := *out
	if path == "" {
		path = fmt.Sprintf("sample_%d.dat", *n)
	}

	start := time.Now()
	recs := recgen.Generate(recgen.Config{
		Records: *n,
		KeySpan: uint32(*keys),
		Order:   ord,
		Seed:    uint32(*seed),
	})
	if err := recsort.WriteFile(path, recs, recsort.WithIOWorkers(*workers)); err != nil {
		fmt.Fprintf(stderr, "gen: %v\n", err)
		return 2
	}

	fmt.Fprintf(stdout, "wrote %s records (%s, %s keys) to %s in %s\n",
		humanize.Comma(int64(*n)),
		humanize.IBytes(uint64(*n)*recsort.RecordSize),
		ord, path, time.Since(start).Round(time.Millisecond))
	return 0
}
