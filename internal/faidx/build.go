package faidx

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// ErrIndexLocked is returned when another process holds the build lock
// and the context ends before it is released.
var ErrIndexLocked = errors.New("index build already in progress")

// lockRetryDelay is how often a blocked build retries the lock.
const lockRetryDelay = 100 * time.Millisecond

// BuildError reports a FASTA file that cannot be indexed.
type BuildError struct {
	Path   string
	Line   int
	Reason string
}

func (e *BuildError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("build index for %s: line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("build index for %s: %s", e.Path, e.Reason)
}

// Build scans the uncompressed FASTA file at path and writes its .fai
// index next to it. Concurrent builds of the same file are serialized
// with an advisory lock.
func Build(ctx context.Context, path string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	lock := flock.New(IndexPath(path) + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ErrIndexLocked
		}
		return fmt.Errorf("acquire index lock: %w", err)
	}
	if !ok {
		return ErrIndexLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release index lock", zap.String("path", path), zap.Error(err))
		}
		os.Remove(lock.Path())
	}()

	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	entries, err := scan(f, path)
	if err != nil {
		return err
	}

	if err := writeAtomic(IndexPath(path), entries); err != nil {
		return err
	}

	logger.Info("built FASTA index",
		zap.String("path", IndexPath(path)),
		zap.Int("sequences", len(entries)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// scan walks the FASTA file line by line, tracking byte offsets.
func scan(r io.Reader, path string) ([]Entry, error) {
	reader := bufio.NewReaderSize(r, 64*1024)

	magic, _ := reader.Peek(2)
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return nil, &BuildError{Path: path, Reason: "compressed FASTA is not supported"}
	}

	var (
		entries []Entry
		current *Entry
		names   = make(map[string]bool)
		offset  int64
		lineNum int
		// short is set once a line shorter than LineBases is seen; any
		// further bases in the record are then malformed.
		short bool
	)

	finish := func() {
		if current != nil {
			entries = append(entries, *current)
		}
	}

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read FASTA: %w", err)
		}
		lineNum++
		width := int64(len(line))
		bases := int64(len(bytes.TrimRight(line, "\r\n")))

		switch {
		case bytes.HasPrefix(line, []byte(">")):
			finish()
			fields := bytes.Fields(line[1:])
			if len(fields) == 0 {
				return nil, &BuildError{Path: path, Line: lineNum, Reason: "empty sequence name"}
			}
			name := string(fields[0])
			if names[name] {
				return nil, &BuildError{Path: path, Line: lineNum, Reason: fmt.Sprintf("duplicate sequence name %q", name)}
			}
			names[name] = true
			current = &Entry{Name: name, Offset: offset + width}
			short = false

		case current == nil:
			if bases > 0 {
				return nil, &BuildError{Path: path, Line: lineNum, Reason: "sequence data before the first header"}
			}

		case bases == 0:
			short = current.LineBases > 0

		default:
			if short {
				return nil, &BuildError{Path: path, Line: lineNum, Reason: fmt.Sprintf("inconsistent line length in %s", current.Name)}
			}
			if current.LineBases == 0 {
				current.LineBases = bases
				current.LineWidth = width
			} else if bases > current.LineBases {
				return nil, &BuildError{Path: path, Line: lineNum, Reason: fmt.Sprintf("inconsistent line length in %s", current.Name)}
			} else if bases < current.LineBases || width != current.LineWidth {
				short = true
			}
			current.Length += bases
		}

		offset += width
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read FASTA: %w", err)
			}
			break
		}
	}
	finish()

	return entries, nil
}

// writeAtomic writes the index to a temporary file and renames it into place.
func writeAtomic(path string, entries []Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteIndex(tmp, entries); err != nil {
		tmp.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename index: %w", err)
	}
	return nil
}
