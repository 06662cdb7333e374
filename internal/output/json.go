package output

import (
	"encoding/json"
	"io"

	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/validator"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// JSONWriter writes the report as one JSON document.
type JSONWriter struct {
	w      io.Writer
	indent bool
	runID  string
}

// NewJSONWriter creates a JSON writer with indented output.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, indent: true}
}

// SetRunID adds a run identifier to the document.
func (jw *JSONWriter) SetRunID(id string) {
	jw.runID = id
}

type jsonContent struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

type jsonFinding struct {
	Content *jsonContent           `json:"content"`
	Errors  []rule.ValidationError `json:"errors"`
}

type jsonReport struct {
	RunID           string                 `json:"run_id,omitempty"`
	Lines           int                    `json:"lines"`
	Errors          []jsonStreamError      `json:"errors"`
	Global          []jsonFinding          `json:"global"`
	MetaInformation []rule.ValidationError `json:"meta_information"`
	Header          []rule.ValidationError `json:"header"`
	Record          []jsonFinding          `json:"record"`
}

type jsonStreamError struct {
	Content jsonContent `json:"content"`
	Message string      `json:"message"`
}

// Write encodes report.
func (jw *JSONWriter) Write(report *validator.Report) error {
	doc := jsonReport{
		RunID:           jw.runID,
		Lines:           report.Lines,
		Errors:          []jsonStreamError{},
		Global:          findings(report.Global),
		MetaInformation: nonNil(report.MetaInformation),
		Header:          nonNil(report.Header),
		Record:          findings(report.Record),
	}
	for _, se := range report.Errors {
		doc.Errors = append(doc.Errors, jsonStreamError{
			Content: jsonContent{Line: se.Content.Line, Text: se.Content.Text},
			Message: se.Message,
		})
	}

	enc := json.NewEncoder(jw.w)
	if jw.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

func findings(f validator.Findings) []jsonFinding {
	out := []jsonFinding{}
	for _, e := range f.Entries() {
		out = append(out, jsonFinding{Content: content(e.Content), Errors: e.Errors})
	}
	return out
}

func content(c *vcf.Content) *jsonContent {
	if c == nil {
		return nil
	}
	return &jsonContent{Line: c.Line, Text: c.Text}
}

func nonNil(errs []rule.ValidationError) []rule.ValidationError {
	if errs == nil {
		return []rule.ValidationError{}
	}
	return errs
}
