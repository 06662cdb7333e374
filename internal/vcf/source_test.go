package vcf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func TestSource_PlainFile(t *testing.T) {
	testFile := findTestFile(t, "simple.vcf")

	src, err := Open(testFile)
	if err != nil {
		t.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d", len(lines))
	}

	for i, c := range lines {
		if c.Line != i+1 {
			t.Errorf("Expected line number %d, got %d", i+1, c.Line)
		}
	}
	if lines[0].Text != "##fileformat=VCFv4.3" {
		t.Errorf("Unexpected first line %q", lines[0].Text)
	}
	if src.LineNumber() != 5 {
		t.Errorf("Expected LineNumber 5, got %d", src.LineNumber())
	}
}

func TestSource_CRLFWithoutFinalNewline(t *testing.T) {
	src, err := Open(findTestFile(t, "crlf_no_final_newline.vcf"))
	if err != nil {
		t.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if strings.HasSuffix(lines[1].Text, "\r") {
		t.Errorf("Carriage return not stripped: %q", lines[1].Text)
	}
	if lines[2].Text != "NC_000001.10\t10001\t.\tT\tA\t.\t.\t." {
		t.Errorf("Unexpected last line %q", lines[2].Text)
	}
}

func TestSource_TrailingWhitespace(t *testing.T) {
	input := "##fileformat=VCFv4.3 \n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\t\r\n" +
		"NC_000001.10\t10001\t.\tT\tA \t \n" +
		"  \t\n" +
		"  leading kept"

	lines := readAll(t, NewSource(strings.NewReader(input)))
	want := []string{
		"##fileformat=VCFv4.3",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
		"NC_000001.10\t10001\t.\tT\tA",
		"",
		"  leading kept",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(lines))
	}
	for i, c := range lines {
		if c.Text != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i+1, want[i], c.Text)
		}
	}
}

func TestSource_BlockCompressed(t *testing.T) {
	// BGZF is a series of gzip members; write two to exercise multistream decoding.
	var buf bytes.Buffer
	for _, chunk := range []string{
		"##fileformat=VCFv4.3\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n",
		"1\t100\t.\tA\tG\t.\t.\t.\n",
	} {
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(chunk)); err != nil {
			t.Fatalf("write gzip member: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("close gzip member: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.vcf.bgz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open source: %v", err)
	}
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines across gzip members, got %d", len(lines))
	}
	if lines[2].Text != "1\t100\t.\tA\tG\t.\t.\t." {
		t.Errorf("Unexpected record line %q", lines[2].Text)
	}

	compressed, err := NewCompressedSource(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewCompressedSource: %v", err)
	}
	if got := readAll(t, compressed); len(got) != 3 {
		t.Errorf("Expected 3 lines from NewCompressedSource, got %d", len(got))
	}
}

func TestSource_EncodingErrorIsRecoverable(t *testing.T) {
	input := "##fileformat=VCFv4.3\nbad\xff\xfeline\n1\t100\t.\tA\tG\t.\t.\t.\n"
	src := NewSource(strings.NewReader(input))

	c, err := src.Next()
	if err != nil || c == nil || c.Line != 1 {
		t.Fatalf("Expected line 1, got %v, %v", c, err)
	}

	c, err = src.Next()
	if c != nil {
		t.Fatalf("Expected no content for invalid line, got %v", c)
	}
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Expected *EncodingError, got %v", err)
	}
	if encErr.Line != 2 {
		t.Errorf("Expected error at line 2, got %d", encErr.Line)
	}
	if !strings.HasPrefix(encErr.Text, "bad") || !strings.HasSuffix(encErr.Text, "line") {
		t.Errorf("Unexpected lossy text %q", encErr.Text)
	}

	c, err = src.Next()
	if err != nil || c == nil || c.Line != 3 {
		t.Fatalf("Expected scan to continue at line 3, got %v, %v", c, err)
	}

	c, err = src.Next()
	if c != nil || err != nil {
		t.Errorf("Expected end of stream, got %v, %v", c, err)
	}
}

func TestSource_EmptyInput(t *testing.T) {
	src := NewSource(strings.NewReader(""))
	c, err := src.Next()
	if c != nil || err != nil {
		t.Errorf("Expected nil, nil on empty input, got %v, %v", c, err)
	}
	if src.LineNumber() != 0 {
		t.Errorf("Expected LineNumber 0, got %d", src.LineNumber())
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.vcf"))
	if !os.IsNotExist(errors.Unwrap(err)) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestContent_String(t *testing.T) {
	c := Content{Line: 4, Text: "#CHROM"}
	if c.String() != "L4: #CHROM" {
		t.Errorf("Unexpected String() %q", c.String())
	}
	if !c.Less(Content{Line: 5}) || c.Less(Content{Line: 4}) {
		t.Error("Less should order by line number only")
	}
}

func TestEncodingError(t *testing.T) {
	err := &EncodingError{Line: 42, Text: "x�"}

	expected := "invalid UTF-8 character at L42: x�"
	if err.Error() != expected {
		t.Errorf("Error message mismatch: got %q, want %q", err.Error(), expected)
	}
	if err.Content() != (Content{Line: 42, Text: "x�"}) {
		t.Errorf("Unexpected content %v", err.Content())
	}
}

func readAll(t *testing.T, src ContentSource) []Content {
	t.Helper()

	var lines []Content
	for {
		c, err := src.Next()
		if err != nil {
			t.Fatalf("Error reading line: %v", err)
		}
		if c == nil {
			return lines
		}
		lines = append(lines, *c)
	}
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	p := filepath.Join("testdata", name)
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("Test file not found: %s", name)
	}
	return p
}
