package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/homestead-go/internal/domain/event"
)

const hourLayout = "2006-01-02-15"

// Writer appends committed events to hourly zstd-compressed JSONL files named
// events-YYYY-MM-DD-HH.jsonl.zst. The hour comes from the event time, so a replay of the
// same history lands in the same files.
type Writer struct {
	dir   string
	level zstd.EncoderLevel

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

var _ event.Publisher = (*Writer)(nil)

// NewWriter creates a writer. level is 1 (fastest) to 4 (best compression).
func NewWriter(dir string, level int) *Writer {
	if level < 1 || level > 4 {
		level = int(zstd.SpeedDefault)
	}
	return &Writer{dir: dir, level: zstd.EncoderLevel(level)}
}

// Publish writes the batch and flushes it to disk before returning
func (w *Writer) Publish(_ context.Context, events []*event.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range events {
		hour := e.At.UTC().Format(hourLayout)
		if hour != w.curHour {
			if err := w.rotateLocked(hour); err != nil {
				return err
			}
		}
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", e.ID, err)
		}
		if _, err := w.w.Write(b); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.flushLocked()
}

// Close flushes and closes the current file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// PathForHour returns the file holding events of the given hour
func (w *Writer) PathForHour(hour string) string {
	return filepath.Join(w.dir, fmt.Sprintf("events-%s.jsonl.zst", hour))
}

func (w *Writer) flushLocked() error {
	if w.w == nil {
		return nil
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create event log dir: %w", err)
	}
	// Reopening an hour appends a new zstd frame; readers decode concatenated frames
	f, err := os.OpenFile(w.PathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(w.level))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err
}
