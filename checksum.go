package recsort

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	recerrors "github.com/tamirms/recsort/errors"
	"github.com/zeebo/xxh3"
)

// digestBatch is the number of records encoded per xxhash write in Digest.
const digestBatch = 256

// Fingerprint summarizes a record multiset independently of order.
//
// Each record's encoding is hashed with xxHash3-128 and the hashes are added
// lane-wise (mod 2^64). Two stores holding the same records in any order have
// equal fingerprints; losing, duplicating or corrupting a record changes it
// with overwhelming probability.
type Fingerprint struct {
	Count uint64
	Lo    uint64
	Hi    uint64
}

// FingerprintOf computes the Fingerprint of recs.
func FingerprintOf(recs []Record) Fingerprint {
	var fp Fingerprint
	var buf [RecordSize]byte
	for i := range recs {
		recs[i].encodeTo(buf[:])
		h := xxh3.Hash128(buf[:])
		fp.Lo += h.Lo
		fp.Hi += h.Hi
	}
	fp.Count = uint64(len(recs))
	return fp
}

// String formats the fingerprint for diagnostics.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%d:%016x%016x", f.Count, f.Hi, f.Lo)
}

// Digest returns the xxHash64 of recs in file encoding, in order.
// It equals xxhash.Sum64 of the file WriteFile would produce, so equal
// digests mean byte-identical output.
func Digest(recs []Record) uint64 {
	d := xxhash.New()
	buf := make([]byte, digestBatch*RecordSize)
	for lo := 0; lo < len(recs); lo += digestBatch {
		hi := min(lo+digestBatch, len(recs))
		for i := lo; i < hi; i++ {
			recs[i].encodeTo(buf[(i-lo)*RecordSize:])
		}
		if _, err := d.Write(buf[:(hi-lo)*RecordSize]); err != nil {
			panic("hash.Hash.Write returned unexpected error: " + err.Error())
		}
	}
	return d.Sum64()
}

// CheckSorted reports the first adjacent pair of recs that is out of key order.
func CheckSorted(recs []Record) error {
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Key > recs[i].Key {
			return fmt.Errorf("%w: key %d at %d precedes key %d at %d",
				recerrors.ErrNotSorted, recs[i-1].Key, i-1, recs[i].Key, i)
		}
	}
	return nil
}

// Verify checks that recs is sorted and holds exactly the records summarized
// by before.
func Verify(before Fingerprint, recs []Record) error {
	if err := CheckSorted(recs); err != nil {
		return err
	}
	if after := FingerprintOf(recs); after != before {
		return fmt.Errorf("%w: before %s, after %s", recerrors.ErrFingerprintMismatch, before, after)
	}
	return nil
}
