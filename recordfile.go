package recsort

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
	recerrors "github.com/tamirms/recsort/errors"
	"github.com/tamirms/recsort/internal/encoding"
	"golang.org/x/sync/errgroup"
)

const (
	// minParallelRecords is the smallest store that is encoded or decoded
	// with more than one goroutine.
	minParallelRecords = 1 << 14

	// minChunkRecords is the smallest slice of records handed to one I/O worker.
	minChunkRecords = 1 << 12
)

// ReadFile loads every record of the record file at path into memory.
//
// The file must hold at least one record. A size that is not a multiple of
// RecordSize is rejected with ErrTrailingBytes unless WithTrailingBytes(true)
// is given, in which case the incomplete tail is ignored.
func ReadFile(path string, opts ...FileOption) ([]Record, error) {
	cfg := defaultFileConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()
	return readRecords(f, cfg)
}

// readRecords maps f read-only and decodes its records.
// The caller is responsible for closing f.
func readRecords(f *os.File, cfg *fileConfig) ([]Record, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat record file: %w", err)
	}
	size := stat.Size()

	n, rest := encoding.Count(size)
	if n == 0 {
		return nil, fmt.Errorf("%w: %s is %d bytes", recerrors.ErrFileTooSmall, f.Name(), size)
	}
	if rest != 0 && !cfg.trailingBytes {
		return nil, fmt.Errorf("%w: %d bytes after record %d", recerrors.ErrTrailingBytes, rest, n)
	}
	if n > math.MaxInt/RecordSize {
		return nil, recerrors.ErrRecordCountOverflow
	}

	fadviseSequential(int(f.Fd()), 0, size)

	mm, err := mmap.MapRegion(f, int(n*RecordSize), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap record file: %w", err)
	}
	madviseSequential(mm)

	recs := make([]Record, n)
	decodeErr := forEachChunk(len(recs), cfg.workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			recs[i].decodeFrom(mm[i*RecordSize:])
		}
		return nil
	})
	if err := errors.Join(decodeErr, mm.Unmap()); err != nil {
		return nil, fmt.Errorf("decode record file: %w", err)
	}
	return recs, nil
}

// WriteFile writes recs to path in record file format, replacing any
// existing file. On failure the partially written file is removed.
func WriteFile(path string, recs []Record, opts ...FileOption) error {
	cfg := defaultFileConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	w, err := newRecordWriter(path, len(recs))
	if err != nil {
		return err
	}

	data := w.region()
	err = forEachChunk(len(recs), cfg.workers, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			recs[i].encodeTo(data[i*RecordSize:])
		}
		return nil
	})
	if err != nil {
		return errors.Join(err, w.abort())
	}
	return w.finalize()
}

// recordWriter owns an output file that is pre-allocated to its final size
// and memory-mapped for direct writes.
type recordWriter struct {
	path string
	file *os.File
	mmap mmap.MMap // nil for an empty output
}

// newRecordWriter creates path sized for n records and maps it read-write.
func newRecordWriter(path string, n int) (*recordWriter, error) {
	if n > math.MaxInt/RecordSize {
		return nil, recerrors.ErrRecordCountOverflow
	}
	size := int64(n) * RecordSize

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create record file: %w", err)
	}
	w := &recordWriter{path: path, file: file}
	if size == 0 {
		return w, nil
	}

	// Pre-allocate disk blocks to prevent SIGBUS on disk full
	if err := fallocateFile(file, size); err != nil {
		primaryErr := fmt.Errorf("allocate disk space: %w", err)
		return nil, errors.Join(primaryErr, w.abort())
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("mmap record file: %w", err)
		return nil, errors.Join(primaryErr, w.abort())
	}
	w.mmap = mm

	// Parallel encoders write disjoint pages; fault them in up front.
	prefaultRegion(mm)

	return w, nil
}

// region returns the writable view of the whole output file.
func (w *recordWriter) region() []byte {
	return w.mmap
}

// finalize flushes and unmaps the output and closes the file.
// On error the output file is removed.
func (w *recordWriter) finalize() error {
	if w.mmap != nil {
		if err := w.mmap.Flush(); err != nil {
			primaryErr := fmt.Errorf("mmap flush failed: %w", err)
			return errors.Join(primaryErr, w.abort())
		}

		// Nil mmap regardless of outcome to prevent abort() from retrying.
		unmapErr := w.mmap.Unmap()
		w.mmap = nil
		if unmapErr != nil {
			primaryErr := fmt.Errorf("mmap unmap failed: %w", unmapErr)
			return errors.Join(primaryErr, w.abort())
		}
	}

	closeErr := w.file.Close()
	w.file = nil
	if closeErr != nil {
		return errors.Join(fmt.Errorf("close record file: %w", closeErr), os.Remove(w.path))
	}
	return nil
}

// abort releases the mapping and file and removes the output.
// Idempotent: safe to call multiple times.
func (w *recordWriter) abort() error {
	var unmapErr error
	if w.mmap != nil {
		unmapErr = w.mmap.Unmap()
		w.mmap = nil
	}
	var closeErr error
	if w.file != nil {
		closeErr = w.file.Close()
		w.file = nil
	}
	var removeErr error
	if w.path != "" {
		if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
			removeErr = err
		}
		w.path = ""
	}
	return errors.Join(unmapErr, closeErr, removeErr)
}

// forEachChunk calls fn over [0, n) split into contiguous chunks, running up
// to workers chunks at once. Small inputs run on the calling goroutine.
func forEachChunk(n, workers int, fn func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	workers = ResolveThreads(workers)
	if workers == 1 || n < minParallelRecords {
		return fn(0, n)
	}

	chunk := max((n+workers-1)/workers, minChunkRecords)

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
