// Package recgen generates deterministic sample record stores for the
// commands and their tests.
package recgen

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/spaolacci/murmur3"

	"github.com/tamirms/recsort"
	"github.com/tamirms/recsort/internal/bits"
)

// Order selects the key order of a generated store.
type Order int

const (
	Random Order = iota
	Sorted
	Reversed
)

// ParseOrder parses "random", "sorted" or "reversed".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "random":
		return Random, nil
	case "sorted":
		return Sorted, nil
	case "reversed":
		return Reversed, nil
	}
	return 0, fmt.Errorf("unknown order %q (use random, sorted or reversed)", s)
}

func (o Order) String() string {
	switch o {
	case Sorted:
		return "sorted"
	case Reversed:
		return "reversed"
	default:
		return "random"
	}
}

// Config describes a generated store.
type Config struct {
	Records int
	KeySpan uint32 // keys in [0, KeySpan); 0 for the full int32 range
	Order   Order
	Seed    uint32
}

// Generate builds cfg.Records records.
//
// Keys are murmur3 hashes of the record index bounded to the key span.
// After ordering, the first 8 payload bytes of each record hold its position
// in the returned slice as a little-endian uint64, so the relative order of
// equal keys can be checked after sorting. The remaining payload bytes are
// filled from the same hash stream.
func Generate(cfg Config) []recsort.Record {
	recs := make([]recsort.Record, cfg.Records)
	var idx [8]byte
	for i := range recs {
		binary.LittleEndian.PutUint64(idx[:], uint64(i))
		h := murmur3.Sum64WithSeed(idx[:], cfg.Seed)
		recs[i].Key = bits.KeyFromHash(h, cfg.KeySpan)
		fillPayload(&recs[i].Payload, h)
	}

	switch cfg.Order {
	case Sorted:
		slices.SortStableFunc(recs, func(a, b recsort.Record) int { return cmp.Compare(a.Key, b.Key) })
	case Reversed:
		slices.SortStableFunc(recs, func(a, b recsort.Record) int { return cmp.Compare(b.Key, a.Key) })
	}

	for i := range recs {
		binary.LittleEndian.PutUint64(recs[i].Payload[:8], uint64(i))
	}
	return recs
}

// fillPayload fills payload[8:] with 128-bit murmur3 output chained from seed.
func fillPayload(payload *[recsort.PayloadSize]byte, seed uint64) {
	var block [8]byte
	for off := 8; off < len(payload); off += 16 {
		binary.LittleEndian.PutUint64(block[:], seed)
		h1, h2 := murmur3.Sum128WithSeed(block[:], uint32(off))
		var out [16]byte
		binary.LittleEndian.PutUint64(out[:8], h1)
		binary.LittleEndian.PutUint64(out[8:], h2)
		copy(payload[off:], out[:])
		seed = h1 ^ h2
	}
}

// Position returns the generation position stored in r's payload.
func Position(r *recsort.Record) uint64 {
	return binary.LittleEndian.Uint64(r.Payload[:8])
}
