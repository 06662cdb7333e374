package rule

import "fmt"

// Settings is the configuration every rule carries.
type Settings struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Level   Level  `yaml:"level" json:"level" validate:"oneof=none warning error"`
	Message string `yaml:"message" json:"message" validate:"required"`
}

// Active reports whether the rule takes part in validation.
// A rule at level None never participates.
func (s Settings) Active() bool {
	return s.Enabled && s.Level != None
}

// ValidationError is a finding produced by one rule evaluation.
type ValidationError struct {
	Code    string `json:"id"`
	Name    string `json:"name"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s [%s]: %s", e.Code, e.Name, e.Level, e.Message)
}

// Params are the named values substituted into a rule's message template.
type Params map[string]any

// Rule is a single check over the state S of one validator.
type Rule[S any] interface {
	Identity() Identity
	Settings() Settings
	// Check reports whether state violates the rule, and the message
	// parameters to render when it does.
	Check(state *S) (Params, bool)
}

// Evaluate runs r against state. Inactive rules are not checked at all.
// It returns nil when the rule abstains; a rendering error is a
// configuration defect and is returned as such.
func Evaluate[S any](r Rule[S], state *S, renderer Renderer) (*ValidationError, error) {
	settings := r.Settings()
	if !settings.Active() {
		return nil, nil
	}

	params, violated := r.Check(state)
	if !violated {
		return nil, nil
	}

	id := r.Identity()
	msg, err := renderer.Render(id.Name, params)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", id.Name, err)
	}

	return &ValidationError{
		Code:    id.Code,
		Name:    id.Name,
		Level:   settings.Level,
		Message: msg,
	}, nil
}
