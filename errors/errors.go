// Package errors defines all exported error sentinels for the recsort library.
//
// This is the single source of truth for error values. Both the top-level
// recsort package and the commands import from here, so errors.Is checks
// work across package boundaries.
package errors

import "errors"

// Input file errors
var (
	ErrFileTooSmall        = errors.New("recsort: file is smaller than one record")
	ErrTrailingBytes       = errors.New("recsort: file size is not a multiple of the record size")
	ErrShortRecord         = errors.New("recsort: buffer is shorter than one record")
	ErrRecordCountOverflow = errors.New("recsort: record count exceeds addressable memory")
)

// Verification errors
var (
	ErrNotSorted           = errors.New("recsort: records are not sorted by key")
	ErrFingerprintMismatch = errors.New("recsort: record multiset changed during sort")
)
