package validator

import (
	"slices"
	"strings"

	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

const fileFormatKey = "fileformat="

// MetaState holds every "##" line seen, in order.
type MetaState struct {
	Contents []vcf.Content
}

// declarations returns the lines that declare the file format.
func (s *MetaState) declarations() []vcf.Content {
	var out []vcf.Content
	for _, c := range s.Contents {
		if strings.Contains(c.Text, fileFormatKey) {
			out = append(out, c)
		}
	}
	return out
}

// MetaValidator checks the meta-information preamble.
type MetaValidator struct {
	state     MetaState
	rules     []rule.Rule[MetaState]
	renderer  rule.Renderer
	errors    []rule.ValidationError
	finalized bool
}

// NewMetaValidator builds the validator from the rule configuration.
func NewMetaValidator(cfg *config.Config, renderer rule.Renderer) *MetaValidator {
	return &MetaValidator{
		rules: []rule.Rule[MetaState]{
			fileFormat{cfg.FileFormat},
			version{cfg.Version},
		},
		renderer: renderer,
	}
}

// Push accumulates a meta-information line.
func (v *MetaValidator) Push(c vcf.Content) {
	if v.finalized {
		return
	}
	v.state.Contents = append(v.state.Contents, c)
}

// Finalize evaluates every meta-information rule once.
func (v *MetaValidator) Finalize() error {
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
func (v *MetaValidator) Errors() []rule.ValidationError {
	return v.errors
}

// fileFormat requires exactly one declaration, on line 1, naming an
// allowed version.
type fileFormat struct{ cfg config.AllowedValues }

func (r fileFormat) Identity() rule.Identity { return rule.FileFormat }
func (r fileFormat) Settings() rule.Settings { return r.cfg.Settings }

func (r fileFormat) Check(s *MetaState) (rule.Params, bool) {
	params := rule.Params{"allowed": strings.Join(r.cfg.Allowed, "/")}

	decl := s.declarations()
	if len(decl) != 1 || decl[0].Line != 1 {
		return params, true
	}
	for _, a := range r.cfg.Allowed {
		if decl[0].Text == "##"+fileFormatKey+a {
			return nil, false
		}
	}
	return params, true
}

// version checks only the declared version token of the first
// declaration. Missing declarations are left to fileFormat.
type version struct{ cfg config.AllowedValues }

func (r version) Identity() rule.Identity { return rule.Version }
func (r version) Settings() rule.Settings { return r.cfg.Settings }

func (r version) Check(s *MetaState) (rule.Params, bool) {
	decl := s.declarations()
	if len(decl) == 0 {
		return nil, false
	}

	_, value, _ := strings.Cut(decl[0].Text, fileFormatKey)
	if slices.Contains(r.cfg.Allowed, strings.TrimSpace(value)) {
		return nil, false
	}
	return rule.Params{"allowed": strings.Join(r.cfg.Allowed, ", ")}, true
}

// evaluateAll runs rules in order and collects their findings.
func evaluateAll[S any](rules []rule.Rule[S], state *S, renderer rule.Renderer) ([]rule.ValidationError, error) {
	var out []rule.ValidationError
	for _, r := range rules {
		e, err := rule.Evaluate(r, state, renderer)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, *e)
		}
	}
	return out, nil
}
