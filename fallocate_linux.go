//go:build linux

package recsort

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for file and sets its length.
// Falls back to ftruncate where fallocate is unsupported (NFS, tmpfs on old kernels).
func fallocateFile(file *os.File, size int64) error {
	if err := unix.Fallocate(int(file.Fd()), 0, 0, size); err == nil {
		return nil
	}
	return unix.Ftruncate(int(file.Fd()), size)
}
