package faidx

import (
	"bytes"
	"fmt"
	"os"
)

// Reader fetches subsequences from an indexed FASTA file.
type Reader struct {
	file    *os.File
	entries map[string]Entry
	names   []string
}

// Open opens the FASTA file at path using its existing .fai index.
func Open(path string) (*Reader, error) {
	idx, err := os.Open(IndexPath(path))
	if err != nil {
		return nil, fmt.Errorf("open FASTA index: %w", err)
	}
	defer idx.Close()

	entries, err := ReadIndex(idx)
	if err != nil {
		return nil, fmt.Errorf("read FASTA index %s: %w", IndexPath(path), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}

	r := &Reader{
		file:    f,
		entries: make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		r.entries[e.Name] = e
		r.names = append(r.names, e.Name)
	}
	return r, nil
}

// Names returns the sequence names in index order.
func (r *Reader) Names() []string {
	return r.names
}

// Length returns the length of the named sequence.
func (r *Reader) Length(chrom string) (int64, bool) {
	e, ok := r.entries[chrom]
	return e.Length, ok
}

// Fetch returns the bases of chrom between start and end, zero-based and
// inclusive. End is clamped to the sequence length.
func (r *Reader) Fetch(chrom string, start, end int) ([]byte, error) {
	e, ok := r.entries[chrom]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSequenceNotFound, chrom)
	}

	begin, last := int64(start), int64(end)
	if begin < 0 || begin >= e.Length || begin > last {
		return nil, fmt.Errorf("invalid interval %s:%d-%d (length %d)", chrom, start, end, e.Length)
	}
	if last >= e.Length {
		last = e.Length - 1
	}

	from := e.byteOffset(begin)
	to := e.byteOffset(last) + 1
	buf := make([]byte, to-from)
	if _, err := r.file.ReadAt(buf, from); err != nil {
		return nil, fmt.Errorf("read %s:%d-%d: %w", chrom, start, end, err)
	}

	seq := make([]byte, 0, last-begin+1)
	for _, line := range bytes.Split(buf, []byte{'\n'}) {
		seq = append(seq, bytes.TrimRight(line, "\r")...)
	}
	return seq, nil
}

// Close closes the underlying FASTA file.
func (r *Reader) Close() error {
	return r.file.Close()
}
