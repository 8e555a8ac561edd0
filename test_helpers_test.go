package recsort

import (
	"cmp"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

// newTestRNG returns a PCG generator seeded from the test name, so every test
// sees its own reproducible stream.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// tagOf returns the original-position tag stored in the first 8 payload bytes.
func tagOf(r *Record) uint64 {
	return binary.LittleEndian.Uint64(r.Payload[:8])
}

// makeRecord builds a record with the given key and position tag. The rest of
// the payload is derived from the tag so corruption anywhere is detectable.
func makeRecord(key int32, tag uint64) Record {
	r := Record{Key: key}
	binary.LittleEndian.PutUint64(r.Payload[:8], tag)
	for i := 8; i < PayloadSize; i++ {
		r.Payload[i] = byte(tag*31 + uint64(i))
	}
	return r
}

// randomRecords generates n tagged records. With keySpan > 0 keys lie in
// [0, keySpan), which forces duplicates for small spans; keySpan == 0 uses the
// full int32 range.
func randomRecords(rng *rand.Rand, n int, keySpan uint32) []Record {
	recs := make([]Record, n)
	for i := range recs {
		var key int32
		if keySpan == 0 {
			key = int32(rng.Uint32())
		} else {
			key = int32(rng.Uint32N(keySpan))
		}
		recs[i] = makeRecord(key, uint64(i))
	}
	return recs
}

// recordsWithKeys builds tagged records from a key list.
func recordsWithKeys(keys ...int32) []Record {
	recs := make([]Record, len(keys))
	for i, k := range keys {
		recs[i] = makeRecord(k, uint64(i))
	}
	return recs
}

// keysOf extracts the keys of recs in order.
func keysOf(recs []Record) []int32 {
	keys := make([]int32, len(recs))
	for i := range recs {
		keys[i] = recs[i].Key
	}
	return keys
}

// referenceMergeSort is a plain single-threaded top-down merge sort that
// allocates fresh halves at every level. It shares no code with the package.
func referenceMergeSort(recs []Record) {
	if len(recs) < 2 {
		return
	}
	mid := (len(recs)-1)/2 + 1
	referenceMergeSort(recs[:mid])
	referenceMergeSort(recs[mid:])

	left := slices.Clone(recs[:mid])
	right := slices.Clone(recs[mid:])
	i, j := 0, 0
	for k := range recs {
		if j >= len(right) || (i < len(left) && left[i].Key <= right[j].Key) {
			recs[k] = left[i]
			i++
		} else {
			recs[k] = right[j]
			j++
		}
	}
}

// stableSorted returns a stably sorted copy of recs using the standard library.
func stableSorted(recs []Record) []Record {
	out := slices.Clone(recs)
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// assertStable fails if equal-key records of recs are not in ascending tag order.
func assertStable(t *testing.T, recs []Record) {
	t.Helper()
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Key == recs[i].Key && tagOf(&recs[i-1]) > tagOf(&recs[i]) {
			t.Fatalf("stability violated at %d: key %d tags %d then %d",
				i, recs[i].Key, tagOf(&recs[i-1]), tagOf(&recs[i]))
		}
	}
}

// assertSameRecords fails unless got and want are element-wise identical.
func assertSameRecords(t *testing.T, got, want []Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("record %d: got key %d tag %d, want key %d tag %d",
				i, got[i].Key, tagOf(&got[i]), want[i].Key, tagOf(&want[i]))
		}
	}
}
