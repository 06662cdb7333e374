// Package faidx builds and reads FASTA index (.fai) files and fetches
// reference subsequences through them.
package faidx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSequenceNotFound is returned by Fetch for an unknown sequence name.
var ErrSequenceNotFound = errors.New("sequence not found in index")

// Entry is one line of a .fai file.
type Entry struct {
	Name string
	// Length is the number of bases in the sequence.
	Length int64
	// Offset is the byte offset of the first base.
	Offset int64
	// LineBases is the number of bases per full line.
	LineBases int64
	// LineWidth is the number of bytes per full line, terminator included.
	LineWidth int64
}

// byteOffset returns the file offset of the zero-based base pos.
func (e Entry) byteOffset(pos int64) int64 {
	return e.Offset + (pos/e.LineBases)*e.LineWidth + pos%e.LineBases
}

// IndexPath returns the index path for a FASTA file.
func IndexPath(fastaPath string) string {
	return fastaPath + ".fai"
}

// ReadIndex parses a .fai file.
func ReadIndex(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("line %d: expected 5 fields, got %d", lineNum, len(fields))
		}

		e := Entry{Name: fields[0]}
		values := []*int64{&e.Length, &e.Offset, &e.LineBases, &e.LineWidth}
		for i, v := range values {
			n, err := strconv.ParseInt(fields[i+1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid field %d: %w", lineNum, i+2, err)
			}
			*v = n
		}
		if e.Length > 0 && (e.LineBases <= 0 || e.LineWidth < e.LineBases) {
			return nil, fmt.Errorf("line %d: invalid line layout for %s", lineNum, e.Name)
		}

		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}
	return entries, nil
}

// WriteIndex writes entries in .fai format.
func WriteIndex(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%d\n", e.Name, e.Length, e.Offset, e.LineBases, e.LineWidth); err != nil {
			return err
		}
	}
	return bw.Flush()
}
