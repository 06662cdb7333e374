// Package rule defines the contract shared by every validation rule:
// identity, settings, severity level, findings and message rendering.
package rule

import (
	"fmt"
	"strings"
)

// Level is the severity attached to a rule and echoed into its findings.
type Level string

const (
	// None disables a rule.
	None Level = "none"
	// Warning reports a finding and continues.
	Warning Level = "warning"
	// Error reports a finding that makes the file invalid.
	Error Level = "error"
)

// ParseLevel parses a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case None, Warning, Error:
		return l, nil
	default:
		return "", fmt.Errorf("unknown level %q (want none, warning or error)", s)
	}
}

// UnmarshalText parses a level name case-insensitively.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// AtLeast reports whether l is as strict as or stricter than other.
// None is below Warning, which is below Error.
func (l Level) AtLeast(other Level) bool {
	return l.rank() >= other.rank()
}

func (l Level) rank() int {
	switch l {
	case Warning:
		return 1
	case Error:
		return 2
	default:
		return 0
	}
}
