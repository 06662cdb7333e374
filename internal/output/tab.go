// Package output renders validation reports.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-lint/internal/validator"
)

// Kind names a report format.
type Kind string

const (
	KindTSV      Kind = "tsv"
	KindJSON     Kind = "json"
	KindMarkdown Kind = "markdown"
)

// Kinds lists the supported report formats.
var Kinds = []Kind{KindTSV, KindJSON, KindMarkdown}

// Writer renders a whole report.
type Writer interface {
	Write(report *validator.Report) error
}

// NewWriter returns the writer for kind. Kind names are case-insensitive;
// "md" is accepted for markdown.
func NewWriter(kind string, w io.Writer) (Writer, error) {
	switch Kind(strings.ToLower(kind)) {
	case KindTSV, "":
		return NewTabWriter(w), nil
	case KindJSON:
		return NewJSONWriter(w), nil
	case KindMarkdown, "md":
		return NewMarkdownWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown report type %q (want tsv, json or markdown)", kind)
	}
}

// TabWriter writes one finding per tab-delimited row.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"Category",
			"Line",
			"Code",
			"Name",
			"Level",
			"Message",
			"Content",
		},
	}
}

// Write writes the header and every finding of report.
func (tw *TabWriter) Write(report *validator.Report) error {
	if _, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n"); err != nil {
		return err
	}

	for _, e := range report.Findings() {
		line, content := "-", "-"
		if e.Content != nil {
			line = strconv.Itoa(e.Content.Line)
			content = e.Content.Text
		}

		values := []string{
			string(e.Category),
			line,
			e.Error.Code,
			e.Error.Name,
			string(e.Error.Level),
			e.Error.Message,
			content,
		}
		for i, v := range values {
			values[i] = sanitize(v)
		}

		if _, err := tw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}

	return tw.w.Flush()
}

// sanitize keeps a value on one TSV cell.
func sanitize(s string) string {
	if s == "" {
		return "-"
	}
	return strings.NewReplacer("\t", "\\t", "\n", "\\n", "\r", "\\r").Replace(s)
}
