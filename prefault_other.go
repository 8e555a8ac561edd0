//go:build !linux

package recsort

// prefaultRegion is a no-op; MADV_POPULATE_WRITE is Linux-only.
func prefaultRegion(data []byte) {}
