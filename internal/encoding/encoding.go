// Package encoding provides the on-disk layout of a sort record.
//
// A record is KeySize bytes of native-endian int32 key followed by
// PayloadSize opaque bytes. Files written on one architecture are only
// portable to machines of the same byte order.
package encoding

import "encoding/binary"

const (
	// KeySize is the encoded size of the sort key.
	KeySize = 4

	// PayloadSize is the size of the opaque payload carried with each key.
	PayloadSize = 96

	// RecordSize is the encoded size of one record.
	RecordSize = KeySize + PayloadSize
)

// PutKey writes key in native byte order to dst[0:KeySize].
func PutKey(dst []byte, key int32) {
	binary.NativeEndian.PutUint32(dst[:KeySize], uint32(key))
}

// ReadKey reads a native-endian key from src[0:KeySize].
func ReadKey(src []byte) int32 {
	return int32(binary.NativeEndian.Uint32(src[:KeySize]))
}

// PutRecord encodes key and payload into dst[0:RecordSize].
// Panics if dst is shorter than RecordSize.
func PutRecord(dst []byte, key int32, payload *[PayloadSize]byte) {
	_ = dst[RecordSize-1]
	PutKey(dst, key)
	copy(dst[KeySize:RecordSize], payload[:])
}

// ReadRecord decodes the record stored at src[0:RecordSize] into key and payload.
func ReadRecord(src []byte, payload *[PayloadSize]byte) int32 {
	_ = src[RecordSize-1]
	copy(payload[:], src[KeySize:RecordSize])
	return ReadKey(src)
}

// Count returns the number of whole records in size bytes and the number of
// bytes left over.
func Count(size int64) (n int64, rest int64) {
	return size / RecordSize, size % RecordSize
}
