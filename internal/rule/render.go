package rule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"
)

// Renderer turns a rule's message template into its final text.
// Templates are looked up by the rule's dotted name.
type Renderer interface {
	Render(name string, params Params) (string, error)
}

// TemplateRenderer renders messages with text/template.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// bareParam matches "{{allowed}}"-style placeholders, which are accepted
// as shorthand for "{{.allowed}}".
var bareParam = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// NewTemplateRenderer parses every message template up front so that a
// malformed template is reported before any validation starts.
func NewTemplateRenderer(messages map[string]string) (*TemplateRenderer, error) {
	names := make([]string, 0, len(messages))
	for name := range messages {
		names = append(names, name)
	}
	sort.Strings(names)

	r := &TemplateRenderer{templates: make(map[string]*template.Template, len(messages))}
	for _, name := range names {
		src := bareParam.ReplaceAllString(messages[name], "{{.$1}}")
		tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse message template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

// Render executes the template registered for name.
func (r *TemplateRenderer) Render(name string, params Params) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("no message template for %s", name)
	}
	if params == nil {
		params = Params{}
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]any(params)); err != nil {
		return "", fmt.Errorf("execute message template %s: %w", name, err)
	}
	return b.String(), nil
}
