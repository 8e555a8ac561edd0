package recsort

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	recerrors "github.com/tamirms/recsort/errors"
)

// ---------------------------------------------------------------------------
// Category 1: Read errors
// ---------------------------------------------------------------------------

func TestReadFileDirectory(t *testing.T) {
	if _, err := ReadFile(t.TempDir()); err == nil {
		t.Error("Expected error when reading a directory")
	}
}

func TestReadFileErrorContext(t *testing.T) {
	path := writeRaw(t, make([]byte, 3*RecordSize+7))
	_, err := ReadFile(path)
	if !errors.Is(err, recerrors.ErrTrailingBytes) {
		t.Fatalf("Expected ErrTrailingBytes, got %v", err)
	}
	if !strings.Contains(err.Error(), "7 bytes after record 3") {
		t.Errorf("error lacks position context: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Category 2: Write errors
// ---------------------------------------------------------------------------

func TestWriteFileReadOnlyDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := WriteFile(filepath.Join(dir, "out.dat"), recordsWithKeys(1, 2))
	if err == nil {
		t.Fatal("Expected error writing into a read-only directory")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Errorf("Expected os.ErrPermission, got %v", err)
	}
}

func TestSortFileOutputErrorKeepsStats(t *testing.T) {
	in := writeRaw(t, encodeAll(recordsWithKeys(4, 3, 2, 1)))
	out := filepath.Join(t.TempDir(), "missing", "out.dat")

	stats, err := SortFile(in, out, []SortOption{WithThreads(2)})
	if err == nil {
		t.Fatal("Expected error writing into a missing directory")
	}
	if !strings.HasPrefix(err.Error(), "write output:") {
		t.Errorf("error lacks stage context: %v", err)
	}
	if stats.Records != 4 {
		t.Errorf("stats.Records = %d, want 4", stats.Records)
	}
}

// ---------------------------------------------------------------------------
// Category 3: Sentinels
// ---------------------------------------------------------------------------

func TestSentinelsDistinct(t *testing.T) {
	sentinels := []error{
		recerrors.ErrFileTooSmall,
		recerrors.ErrTrailingBytes,
		recerrors.ErrShortRecord,
		recerrors.ErrRecordCountOverflow,
		recerrors.ErrNotSorted,
		recerrors.ErrFingerprintMismatch,
	}
	for i, a := range sentinels {
		if !strings.HasPrefix(a.Error(), "recsort: ") {
			t.Errorf("sentinel %q lacks package prefix", a)
		}
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%q matches %q", a, b)
			}
		}
	}
}
