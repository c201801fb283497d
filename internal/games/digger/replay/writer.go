package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Writer appends entries to a zstd-compressed JSONL stream.
type Writer struct {
	mu  sync.Mutex
	f   *os.File // nil when writing to a caller-owned io.Writer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens path for writing, replacing any existing file.
func Create(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: create dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: create %s: %w", path, err)
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// NewWriter wraps dst. Closing the Writer flushes the compressed stream but
// does not close dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("replay: zstd writer: %w", err)
	}
	return &Writer{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Write appends one entry.
func (w *Writer) Write(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return fmt.Errorf("replay: write after close")
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("replay: marshal: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("replay: write: %w", err)
	}
	return nil
}

// Close flushes and finishes the stream.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return nil
	}
	var firstErr error
	if err := w.w.Flush(); err != nil {
		firstErr = err
	}
	if err := w.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	w.enc = nil
	w.w = nil
	if w.f != nil {
		if err := w.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		w.f = nil
	}
	if firstErr != nil {
		return fmt.Errorf("replay: close: %w", firstErr)
	}
	return nil
}
