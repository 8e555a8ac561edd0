package recsort

import (
	"slices"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		keys []int32
		mid  int
		want []int32
	}{
		{"two", []int32{5, 3}, 1, []int32{3, 5}},
		{"interleaved", []int32{1, 3, 5, 2, 4, 6}, 3, []int32{1, 2, 3, 4, 5, 6}},
		{"left all smaller", []int32{1, 2, 3, 4, 5}, 3, []int32{1, 2, 3, 4, 5}},
		{"right all smaller", []int32{4, 5, 6, 1, 2}, 3, []int32{1, 2, 4, 5, 6}},
		{"uneven", []int32{7, 1, 2, 3, 4}, 1, []int32{1, 2, 3, 4, 7}},
		{"negative", []int32{-5, 0, 9, -7, -5, 10}, 3, []int32{-7, -5, -5, 0, 9, 10}},
	}

	var scratch scratchPool
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := recordsWithKeys(tc.keys...)
			merge(recs, tc.mid, &scratch)
			if got := keysOf(recs); !slices.Equal(got, tc.want) {
				t.Fatalf("merge(%v, %d) = %v, want %v", tc.keys, tc.mid, got, tc.want)
			}
		})
	}
}

// TestMergeTiesPreferLeft checks that equal keys from the left half are
// emitted before those from the right half.
func TestMergeTiesPreferLeft(t *testing.T) {
	// Tags 0..2 on the left, 3..5 on the right; all ties on key 2.
	recs := recordsWithKeys(1, 2, 2, 2, 2, 3)
	var scratch scratchPool
	merge(recs, 3, &scratch)

	wantTags := []uint64{0, 1, 2, 3, 4, 5}
	for i := range recs {
		if tagOf(&recs[i]) != wantTags[i] {
			t.Fatalf("position %d: tag %d, want %d", i, tagOf(&recs[i]), wantTags[i])
		}
	}
}

func TestMergeCarriesPayload(t *testing.T) {
	rng := newTestRNG(t)
	recs := randomRecords(rng, 200, 50)
	slices.SortStableFunc(recs[:120], func(a, b Record) int { return int(a.Key) - int(b.Key) })
	slices.SortStableFunc(recs[120:], func(a, b Record) int { return int(a.Key) - int(b.Key) })
	want := stableSorted(recs)

	var scratch scratchPool
	merge(recs, 120, &scratch)
	assertSameRecords(t, recs, want)
}

func TestMergeSplitOutOfRangePanics(t *testing.T) {
	for _, mid := range []int{0, 3, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("mid %d: expected panic", mid)
				}
			}()
			var scratch scratchPool
			merge(recordsWithKeys(1, 2, 3), mid, &scratch)
		}()
	}
}

func TestScratchPoolReuse(t *testing.T) {
	var p scratchPool
	buf := p.get(64)
	if len(buf) != 64 {
		t.Fatalf("get(64) len = %d", len(buf))
	}
	p.put(buf)

	// A smaller request may be served from the pooled buffer; either way the
	// length must be exact.
	small := p.get(10)
	if len(small) != 10 {
		t.Fatalf("get(10) len = %d", len(small))
	}
	p.put(small)

	large := p.get(1000)
	if len(large) != 1000 {
		t.Fatalf("get(1000) len = %d", len(large))
	}
}
