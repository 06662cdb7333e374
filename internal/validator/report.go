package validator

import (
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// Category names the part of the report a finding belongs to.
type Category string

const (
	CategoryStream          Category = "Stream"
	CategoryGlobal          Category = "Global"
	CategoryMetaInformation Category = "MetaInformation"
	CategoryHeader          Category = "Header"
	CategoryRecord          Category = "Record"
)

// Finding groups the errors attributed to one line. A nil Content means
// the errors concern the whole file.
type Finding struct {
	Content *vcf.Content
	Errors  []rule.ValidationError
}

// Findings is an ordered collection of per-line findings. Entries keep
// the order in which their line first produced an error.
type Findings struct {
	entries []Finding
	index   map[int]int
}

// Add attributes err to c, or to the whole file when c is nil.
func (f *Findings) Add(c *vcf.Content, err rule.ValidationError) {
	if f.index == nil {
		f.index = make(map[int]int)
	}

	// Lines are 1-based, so 0 is free for the whole-file entry.
	key := 0
	if c != nil {
		key = c.Line
	}

	i, ok := f.index[key]
	if !ok {
		var content *vcf.Content
		if c != nil {
			copied := *c
			content = &copied
		}
		i = len(f.entries)
		f.index[key] = i
		f.entries = append(f.entries, Finding{Content: content})
	}
	f.entries[i].Errors = append(f.entries[i].Errors, err)
}

// Entries returns the findings in order.
func (f Findings) Entries() []Finding {
	return f.entries
}

// Len returns the total number of errors.
func (f Findings) Len() int {
	n := 0
	for _, e := range f.entries {
		n += len(e.Errors)
	}
	return n
}

// StreamError is a line that could not be read as text. The line is
// skipped by every rule.
type StreamError struct {
	Content vcf.Content
	Message string
}

// Report is the result of one validation pass.
type Report struct {
	// Lines is the number of lines read, including unreadable ones.
	Lines           int
	Errors          []StreamError
	Global          Findings
	MetaInformation []rule.ValidationError
	Header          []rule.ValidationError
	Record          Findings
}

// NewReport assembles the report from finalized validators.
func NewReport(lines int, streamErrors []StreamError, g *GlobalValidator, m *MetaValidator, h *HeaderValidator, r *RecordValidator) *Report {
	return &Report{
		Lines:           lines,
		Errors:          streamErrors,
		Global:          g.Errors(),
		MetaInformation: m.Errors(),
		Header:          h.Errors(),
		Record:          r.Errors(),
	}
}

// Entry is one flattened finding.
type Entry struct {
	Category Category
	Content  *vcf.Content
	Error    rule.ValidationError
}

// Findings flattens the report: stream errors first, then the global,
// meta-information, header and record findings in their own order.
func (r *Report) Findings() []Entry {
	var out []Entry

	for _, se := range r.Errors {
		c := se.Content
		out = append(out, Entry{Category: CategoryStream, Content: &c, Error: se.validationError()})
	}
	out = appendFindings(out, CategoryGlobal, r.Global)
	for _, e := range r.MetaInformation {
		out = append(out, Entry{Category: CategoryMetaInformation, Error: e})
	}
	for _, e := range r.Header {
		out = append(out, Entry{Category: CategoryHeader, Error: e})
	}
	out = appendFindings(out, CategoryRecord, r.Record)

	return out
}

func appendFindings(out []Entry, cat Category, f Findings) []Entry {
	for _, finding := range f.Entries() {
		for _, e := range finding.Errors {
			out = append(out, Entry{Category: cat, Content: finding.Content, Error: e})
		}
	}
	return out
}

// Count returns the number of findings at level. Stream errors count as
// errors.
func (r *Report) Count(level rule.Level) int {
	n := 0
	for _, e := range r.Findings() {
		if e.Error.Level == level {
			n++
		}
	}
	return n
}

// HasAtLeast reports whether any finding is at level or stricter.
// Level none never matches.
func (r *Report) HasAtLeast(level rule.Level) bool {
	if level == rule.None {
		return false
	}
	for _, e := range r.Findings() {
		if e.Error.Level.AtLeast(level) {
			return true
		}
	}
	return false
}

// streamErrorName identifies unreadable lines in flattened output.
const streamErrorName = "Stream/Encoding"

func (se StreamError) validationError() rule.ValidationError {
	return rule.ValidationError{
		Code:    "-",
		Name:    streamErrorName,
		Level:   rule.Error,
		Message: se.Message,
	}
}
