//go:build !linux

package recsort

func fadviseSequential(fd int, offset, length int64) {}

func madviseSequential(data []byte) {}
