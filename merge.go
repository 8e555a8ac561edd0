package recsort

import "sync"

// scratchPool recycles the left-half copies made by merge across the
// goroutines of a single sort. A pooled buffer too small for a request is
// dropped and a new one allocated.
type scratchPool struct {
	pool sync.Pool
}

// get returns a buffer of exactly n records.
func (p *scratchPool) get(n int) []Record {
	if v := p.pool.Get(); v != nil {
		buf := *(v.(*[]Record))
		if cap(buf) >= n {
			return buf[:n]
		}
	}
	return make([]Record, n)
}

// put returns buf to the pool.
func (p *scratchPool) put(buf []Record) {
	buf = buf[:0]
	p.pool.Put(&buf)
}

// merge combines the sorted halves recs[:mid] and recs[mid:] into one sorted
// run in place.
//
// Only the left half is copied out; the right half is read where it lies, and
// the write cursor can never overtake it. Ties go to the left half, which
// keeps the sort stable.
func merge(recs []Record, mid int, scratch *scratchPool) {
	if mid <= 0 || mid >= len(recs) {
		panic("recsort: merge split point out of range")
	}

	left := scratch.get(mid)
	defer scratch.put(left)
	copy(left, recs[:mid])

	i, j, k := 0, mid, 0
	for i < len(left) && j < len(recs) {
		if left[i].Key <= recs[j].Key {
			recs[k] = left[i]
			i++
		} else {
			recs[k] = recs[j]
			j++
		}
		k++
	}

	// Leftover right-half records are already in their final slots.
	copy(recs[k:], left[i:])
}
