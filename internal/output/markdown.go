package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-lint/internal/validator"
)

// MarkdownWriter writes one table per report category.
type MarkdownWriter struct {
	w *bufio.Writer
}

// NewMarkdownWriter creates a new Markdown writer.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{w: bufio.NewWriter(w)}
}

var markdownSections = []validator.Category{
	validator.CategoryStream,
	validator.CategoryGlobal,
	validator.CategoryMetaInformation,
	validator.CategoryHeader,
	validator.CategoryRecord,
}

// Write writes report. Empty categories are listed with "No findings."
func (mw *MarkdownWriter) Write(report *validator.Report) error {
	byCategory := make(map[validator.Category][]validator.Entry)
	for _, e := range report.Findings() {
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}

	fmt.Fprintf(mw.w, "# Validation report\n\n")
	fmt.Fprintf(mw.w, "Lines: %d\n", report.Lines)

	for _, cat := range markdownSections {
		fmt.Fprintf(mw.w, "\n## %s\n\n", cat)

		entries := byCategory[cat]
		if len(entries) == 0 {
			fmt.Fprintf(mw.w, "No findings.\n")
			continue
		}

		fmt.Fprintf(mw.w, "| Line | Code | Name | Level | Message |\n")
		fmt.Fprintf(mw.w, "|---:|---|---|---|---|\n")
		for _, e := range entries {
			line := "-"
			if e.Content != nil {
				line = fmt.Sprintf("%d", e.Content.Line)
			}
			fmt.Fprintf(mw.w, "| %s | %s | %s | %s | %s |\n",
				line, e.Error.Code, escapeCell(e.Error.Name), e.Error.Level, escapeCell(e.Error.Message))
		}
	}

	return mw.w.Flush()
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}
