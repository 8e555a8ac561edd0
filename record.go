package recsort

import (
	"fmt"

	recerrors "github.com/tamirms/recsort/errors"
	"github.com/tamirms/recsort/internal/encoding"
)

const (
	// KeySize is the encoded size of a record key in bytes.
	KeySize = encoding.KeySize

	// PayloadSize is the size of the opaque payload carried with each key.
	PayloadSize = encoding.PayloadSize

	// RecordSize is the encoded size of one record (4-byte key + 96-byte payload).
	RecordSize = encoding.RecordSize
)

// Record is one fixed-size unit of a record file.
//
// Records are ordered by Key only. Payload travels with its key and is never
// inspected.
//
// Wire format (RecordSize bytes):
//
//	Offset  Size  Field    Type
//	0       4     Key      int32, native byte order
//	4       96    Payload  opaque bytes
type Record struct {
	Key     int32
	Payload [PayloadSize]byte
}

// encodeTo serializes the record into dst[0:RecordSize].
func (r *Record) encodeTo(dst []byte) {
	encoding.PutRecord(dst, r.Key, &r.Payload)
}

// decodeFrom parses the record stored at src[0:RecordSize].
func (r *Record) decodeFrom(src []byte) {
	r.Key = encoding.ReadRecord(src, &r.Payload)
}

// MarshalBinary returns the RecordSize-byte file encoding of r.
func (r Record) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	r.encodeTo(buf)
	return buf, nil
}

// UnmarshalBinary decodes a record from its file encoding.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) < RecordSize {
		return fmt.Errorf("%w: need %d bytes, got %d", recerrors.ErrShortRecord, RecordSize, len(data))
	}
	r.decodeFrom(data)
	return nil
}
