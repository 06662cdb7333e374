package vcf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// Source reads lines from a plain or block-compressed (BGZF) VCF file.
type Source struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	eof        bool
}

// Open creates a new Source for the given file.
// Supports both plain VCF and gzip/BGZF compressed VCF (.vcf.gz, .vcf.bgz) files;
// the transport is detected from the gzip magic bytes. Use "-" for stdin.
func Open(path string) (*Source, error) {
	if path == "-" {
		return NewSource(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	s := &Source{file: file}

	buf := make([]byte, 2)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, fmt.Errorf("read vcf magic: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b); BGZF is multi-member gzip.
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		s.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		s.reader = bufio.NewReaderSize(s.gzipReader, readerCapacity)
	} else {
		s.reader = bufio.NewReaderSize(file, readerCapacity)
	}

	return s, nil
}

// NewSource creates an uncompressed Source from an io.Reader (e.g., stdin).
func NewSource(r io.Reader) *Source {
	return &Source{reader: bufio.NewReaderSize(r, readerCapacity)}
}

// NewCompressedSource creates a Source that decodes gzip/BGZF from r.
func NewCompressedSource(r io.Reader) (*Source, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create gzip reader: %w", err)
	}
	return &Source{
		reader:     bufio.NewReaderSize(gz, readerCapacity),
		gzipReader: gz,
	}, nil
}

const readerCapacity = 10 * 1024

// Next reads the next line of the file with trailing whitespace removed.
// Returns nil, nil when there are no more lines.
func (s *Source) Next() (*Content, error) {
	if s.eof {
		return nil, nil
	}

	buf, err := s.reader.ReadBytes('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", s.lineNumber+1, err)
		}
		s.eof = true
		if len(buf) == 0 {
			return nil, nil
		}
	}
	s.lineNumber++

	// Trailing whitespace, the line terminator included, is not content.
	buf = bytes.TrimRightFunc(buf, unicode.IsSpace)
	if !utf8.Valid(buf) {
		return nil, &EncodingError{
			Line: s.lineNumber,
			Text: strings.ToValidUTF8(string(buf), string(utf8.RuneError)),
		}
	}

	return &Content{Line: s.lineNumber, Text: string(buf)}, nil
}

// LineNumber returns the number of physical lines read so far.
func (s *Source) LineNumber() int {
	return s.lineNumber
}

// Close closes the source and underlying file.
func (s *Source) Close() error {
	if s.gzipReader != nil {
		s.gzipReader.Close()
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// EncodingError reports a line that is not valid UTF-8.
// Text is a lossy rendering with invalid bytes replaced by U+FFFD.
type EncodingError struct {
	Line int
	Text string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 character at L%d: %s", e.Line, e.Text)
}

// Content returns the lossy content the error is attributed to.
func (e *EncodingError) Content() Content {
	return Content{Line: e.Line, Text: e.Text}
}
