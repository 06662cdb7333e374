package validator

import (
	"slices"
	"strings"

	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// FixedColumns are the mandatory header columns, in order.
var FixedColumns = []string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// HeaderState holds every "#" line seen, in order.
type HeaderState struct {
	Contents []vcf.Content
}

// HeaderValidator checks the column header line.
type HeaderValidator struct {
	state     HeaderState
	rules     []rule.Rule[HeaderState]
	renderer  rule.Renderer
	errors    []rule.ValidationError
	finalized bool
}

// NewHeaderValidator builds the validator from the rule configuration.
func NewHeaderValidator(cfg *config.Config, renderer rule.Renderer) *HeaderValidator {
	return &HeaderValidator{
		rules: []rule.Rule[HeaderState]{
			duplicatedHeader{cfg.DuplicatedHeader},
			headerColumn{cfg.HeaderColumn},
			headerLine{cfg.HeaderLine},
		},
		renderer: renderer,
	}
}

// Push accumulates a header line.
func (v *HeaderValidator) Push(c vcf.Content) {
	if v.finalized {
		return
	}
	v.state.Contents = append(v.state.Contents, c)
}

// Finalize evaluates every header rule once.
func (v *HeaderValidator) Finalize() error {
	if v.finalized {
		return nil
	}
	v.finalized = true

	errs, err := evaluateAll(v.rules, &v.state, v.renderer)
	if err != nil {
		return err
	}
	v.errors = append(v.errors, errs...)
	return nil
}

// Errors returns the findings produced by Finalize.
func (v *HeaderValidator) Errors() []rule.ValidationError {
	return v.errors
}

type duplicatedHeader struct{ settings rule.Settings }

func (r duplicatedHeader) Identity() rule.Identity { return rule.DuplicatedHeader }
func (r duplicatedHeader) Settings() rule.Settings { return r.settings }

func (r duplicatedHeader) Check(s *HeaderState) (rule.Params, bool) {
	return nil, len(s.Contents) > 1
}

type headerColumn struct{ settings rule.Settings }

func (r headerColumn) Identity() rule.Identity { return rule.HeaderColumn }
func (r headerColumn) Settings() rule.Settings { return r.settings }

func (r headerColumn) Check(s *HeaderState) (rule.Params, bool) {
	if len(s.Contents) == 1 {
		columns := strings.Split(strings.TrimPrefix(s.Contents[0].Text, "#"), "\t")
		if len(columns) >= len(FixedColumns) && slices.Equal(columns[:len(FixedColumns)], FixedColumns) {
			return nil, false
		}
	}
	return rule.Params{"columns": strings.Join(FixedColumns, ", ")}, true
}

type headerLine struct{ settings rule.Settings }

func (r headerLine) Identity() rule.Identity { return rule.HeaderLine }
func (r headerLine) Settings() rule.Settings { return r.settings }

func (r headerLine) Check(s *HeaderState) (rule.Params, bool) {
	return nil, len(s.Contents) == 0
}
