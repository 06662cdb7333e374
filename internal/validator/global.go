// Package validator implements the streaming validation engine: one state
// machine per line category, the rules evaluated against each state, and
// the report they are aggregated into.
package validator

import (
	"strings"

	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// GlobalState is the whole-file working memory.
type GlobalState struct {
	// Count is the number of lines pushed so far.
	Count int
	// HeaderSeen is set once a header line has been routed.
	HeaderSeen bool
	Previous   *vcf.Content
	Current    *vcf.Content
}

// GlobalValidator checks order-sensitive invariants over every line.
type GlobalValidator struct {
	state     GlobalState
	lineRules []rule.Rule[GlobalState]
	endRules  []rule.Rule[GlobalState]
	renderer  rule.Renderer
	errors    Findings
	finalized bool
}

// NewGlobalValidator builds the validator from the rule configuration.
func NewGlobalValidator(cfg *config.Config, renderer rule.Renderer) *GlobalValidator {
	return &GlobalValidator{
		lineRules: []rule.Rule[GlobalState]{
			dataBeforeHeader{cfg.DataBeforeHeader},
			blankLine{cfg.BlankLine},
		},
		endRules: []rule.Rule[GlobalState]{
			emptyVCF{cfg.EmptyVCF},
		},
		renderer: renderer,
	}
}

// ObserveHeader records that a header line has been seen. It must be
// called before the header line itself is pushed.
func (v *GlobalValidator) ObserveHeader() {
	v.state.HeaderSeen = true
}

// Push evaluates the per-line rules against c. It is a no-op after Finalize.
func (v *GlobalValidator) Push(c vcf.Content) error {
	if v.finalized {
		return nil
	}

	v.state.Count++
	v.state.Current = &c

	for _, r := range v.lineRules {
		e, err := rule.Evaluate(r, &v.state, v.renderer)
		if err != nil {
			return err
		}
		if e != nil {
			v.errors.Add(v.state.Current, *e)
		}
	}

	v.state.Previous = v.state.Current
	return nil
}

// Finalize evaluates the end-of-stream rules. Subsequent calls do nothing.
func (v *GlobalValidator) Finalize() error {
	if v.finalized {
		return nil
	}
	v.finalized = true

	for _, r := range v.endRules {
		e, err := rule.Evaluate(r, &v.state, v.renderer)
		if err != nil {
			return err
		}
		if e != nil {
			v.errors.Add(nil, *e)
		}
	}
	return nil
}

// State returns a copy of the current state.
func (v *GlobalValidator) State() GlobalState {
	return v.state
}

// Errors returns the findings accumulated so far.
func (v *GlobalValidator) Errors() Findings {
	return v.errors
}

type dataBeforeHeader struct{ settings rule.Settings }

func (r dataBeforeHeader) Identity() rule.Identity { return rule.DataBeforeHeader }
func (r dataBeforeHeader) Settings() rule.Settings { return r.settings }

func (r dataBeforeHeader) Check(s *GlobalState) (rule.Params, bool) {
	if s.HeaderSeen {
		return nil, false
	}
	if s.Current != nil && strings.HasPrefix(s.Current.Text, "#") {
		return nil, false
	}
	return nil, true
}

type blankLine struct{ settings rule.Settings }

func (r blankLine) Identity() rule.Identity { return rule.BlankLine }
func (r blankLine) Settings() rule.Settings { return r.settings }

func (r blankLine) Check(s *GlobalState) (rule.Params, bool) {
	return nil, s.Current != nil && strings.TrimSpace(s.Current.Text) == ""
}

type emptyVCF struct{ settings rule.Settings }

func (r emptyVCF) Identity() rule.Identity { return rule.EmptyVCF }
func (r emptyVCF) Settings() rule.Settings { return r.settings }

func (r emptyVCF) Check(s *GlobalState) (rule.Params, bool) {
	return nil, s.Count == 0
}
