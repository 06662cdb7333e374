// Package config holds the rule configuration aggregate: one entry per
// rule, keyed by the rule's dotted name, loaded once per run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-lint/internal/rule"
)

// AllowedValues configures a rule that accepts only the listed values.
type AllowedValues struct {
	rule.Settings `yaml:",inline"`
	Allowed       []string `yaml:"allowed" validate:"required,min=1,dive,required"`
}

// DisallowedValues configures a rule that rejects any of the listed tokens.
type DisallowedValues struct {
	rule.Settings `yaml:",inline"`
	Disallowed    []string `yaml:"disallowed" validate:"required,min=1,dive,required"`
}

// Length configures a rule with an upper length bound.
type Length struct {
	rule.Settings `yaml:",inline"`
	Max           int `yaml:"max" validate:"gte=1"`
}

// Config is the full rule configuration. It is read-only during a validation pass.
type Config struct {
	DataBeforeHeader rule.Settings `yaml:"Global/DataBeforeHeader"`
	BlankLine        rule.Settings `yaml:"Global/BlankLine"`
	EmptyVCF         rule.Settings `yaml:"Global/EmptyVCF"`

	FileFormat AllowedValues `yaml:"MetaInformation/FileFormat"`
	Version    AllowedValues `yaml:"MetaInformation/Version"`

	HeaderLine       rule.Settings `yaml:"Header/HeaderLine"`
	HeaderColumn     rule.Settings `yaml:"Header/HeaderColumn"`
	DuplicatedHeader rule.Settings `yaml:"Header/DuplicatedHeader"`

	AllowedAlternateBase     AllowedValues    `yaml:"Record/AllowedAlternateBase"`
	AllowedReferenceBase     AllowedValues    `yaml:"Record/AllowedReferenceBase"`
	AmbiguousAlternateBase   DisallowedValues `yaml:"Record/AmbiguousAlternateBase"`
	AmbiguousReferenceBase   DisallowedValues `yaml:"Record/AmbiguousReferenceBase"`
	DeletionLength           Length           `yaml:"Record/DeletionLength"`
	DiscontiguousChromosome  rule.Settings    `yaml:"Record/DiscontiguousChromosome"`
	IdenticalBases           rule.Settings    `yaml:"Record/IdenticalBases"`
	InsertionLength          Length           `yaml:"Record/InsertionLength"`
	MismatchReferenceBase    rule.Settings    `yaml:"Record/MismatchReferenceBase"`
	MissingAlternateBase     DisallowedValues `yaml:"Record/MissingAlternateBase"`
	MissingReferenceBase     DisallowedValues `yaml:"Record/MissingReferenceBase"`
	MultipleAlternateAlleles rule.Settings    `yaml:"Record/MultipleAlternateAlleles"`
	PositionFormat           rule.Settings    `yaml:"Record/PositionFormat"`
	UnsortedPosition         rule.Settings    `yaml:"Record/UnsortedPosition"`
}

var (
	nucleotides      = []string{"A", "C", "G", "T", "U"}
	ambiguityCodes   = []string{"R", "Y", "S", "W", "K", "M", "B", "D", "H", "V", "N"}
	missingTokens    = []string{".", "-"}
	fileFormats      = []string{"VCFv4.2", "VCFv4.3"}
	defaultMaxLength = 50
)

// Default returns the built-in configuration with messages in lang.
func Default(lang language.Tag) *Config {
	msg := messages[languageKey(lang)]

	on := func(id rule.Identity, level rule.Level) rule.Settings {
		return rule.Settings{Enabled: true, Level: level, Message: msg[id]}
	}
	values := func(v []string) []string {
		return append([]string(nil), v...)
	}

	return &Config{
		DataBeforeHeader: on(rule.DataBeforeHeader, rule.Warning),
		BlankLine:        on(rule.BlankLine, rule.Error),
		EmptyVCF:         on(rule.EmptyVCF, rule.Error),

		FileFormat: AllowedValues{on(rule.FileFormat, rule.Error), values(fileFormats)},
		Version:    AllowedValues{on(rule.Version, rule.Warning), values(fileFormats)},

		HeaderLine:       on(rule.HeaderLine, rule.Error),
		HeaderColumn:     on(rule.HeaderColumn, rule.Error),
		DuplicatedHeader: on(rule.DuplicatedHeader, rule.Warning),

		AllowedAlternateBase:     AllowedValues{on(rule.AllowedAlternateBase, rule.Warning), values(nucleotides)},
		AllowedReferenceBase:     AllowedValues{on(rule.AllowedReferenceBase, rule.Warning), values(nucleotides)},
		AmbiguousAlternateBase:   DisallowedValues{on(rule.AmbiguousAlternateBase, rule.Warning), values(ambiguityCodes)},
		AmbiguousReferenceBase:   DisallowedValues{on(rule.AmbiguousReferenceBase, rule.Warning), values(ambiguityCodes)},
		DeletionLength:           Length{on(rule.DeletionLength, rule.Warning), defaultMaxLength},
		DiscontiguousChromosome:  on(rule.DiscontiguousChromosome, rule.Warning),
		IdenticalBases:           on(rule.IdenticalBases, rule.Warning),
		InsertionLength:          Length{on(rule.InsertionLength, rule.Warning), defaultMaxLength},
		MismatchReferenceBase:    on(rule.MismatchReferenceBase, rule.Warning),
		MissingAlternateBase:     DisallowedValues{on(rule.MissingAlternateBase, rule.Warning), values(missingTokens)},
		MissingReferenceBase:     DisallowedValues{on(rule.MissingReferenceBase, rule.Warning), values(missingTokens)},
		MultipleAlternateAlleles: on(rule.MultipleAlternateAlleles, rule.Warning),
		PositionFormat:           on(rule.PositionFormat, rule.Warning),
		UnsortedPosition:         on(rule.UnsortedPosition, rule.Warning),
	}
}

// Load reads a YAML rule configuration from path and overlays it on the
// defaults for lang. Rules absent from the file keep their defaults;
// unknown rule names are rejected.
func Load(path string, lang language.Tag) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default(lang)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Dump writes cfg as YAML.
func Dump(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Entry pairs a rule identity with its settings.
type Entry struct {
	Identity rule.Identity
	Settings rule.Settings
}

// settings maps every rule identity to its settings in c.
func (c *Config) settings() map[rule.Identity]*rule.Settings {
	return map[rule.Identity]*rule.Settings{
		rule.DataBeforeHeader: &c.DataBeforeHeader,
		rule.BlankLine:        &c.BlankLine,
		rule.EmptyVCF:         &c.EmptyVCF,

		rule.FileFormat: &c.FileFormat.Settings,
		rule.Version:    &c.Version.Settings,

		rule.HeaderLine:       &c.HeaderLine,
		rule.HeaderColumn:     &c.HeaderColumn,
		rule.DuplicatedHeader: &c.DuplicatedHeader,

		rule.AllowedAlternateBase:     &c.AllowedAlternateBase.Settings,
		rule.AllowedReferenceBase:     &c.AllowedReferenceBase.Settings,
		rule.AmbiguousAlternateBase:   &c.AmbiguousAlternateBase.Settings,
		rule.AmbiguousReferenceBase:   &c.AmbiguousReferenceBase.Settings,
		rule.DeletionLength:           &c.DeletionLength.Settings,
		rule.DiscontiguousChromosome:  &c.DiscontiguousChromosome,
		rule.IdenticalBases:           &c.IdenticalBases,
		rule.InsertionLength:          &c.InsertionLength.Settings,
		rule.MismatchReferenceBase:    &c.MismatchReferenceBase,
		rule.MissingAlternateBase:     &c.MissingAlternateBase.Settings,
		rule.MissingReferenceBase:     &c.MissingReferenceBase.Settings,
		rule.MultipleAlternateAlleles: &c.MultipleAlternateAlleles,
		rule.PositionFormat:           &c.PositionFormat,
		rule.UnsortedPosition:         &c.UnsortedPosition,
	}
}

// Entries returns every rule's settings in catalogue order.
func (c *Config) Entries() []Entry {
	byID := c.settings()
	entries := make([]Entry, 0, len(rule.Catalogue))
	for _, id := range rule.Catalogue {
		entries = append(entries, Entry{Identity: id, Settings: *byID[id]})
	}
	return entries
}

// Rule returns the settings of the rule with the given dotted name or code,
// for in-place modification.
func (c *Config) Rule(name string) (*rule.Settings, bool) {
	for id, s := range c.settings() {
		if id.Name == name || id.Code == name {
			return s, true
		}
	}
	return nil, false
}

// Messages returns the message template of every rule keyed by rule name.
func (c *Config) Messages() map[string]string {
	m := make(map[string]string, len(rule.Catalogue))
	for _, e := range c.Entries() {
		m[e.Identity.Name] = e.Settings.Message
	}
	return m
}

// Renderer builds the message renderer for c. A malformed template is a
// configuration defect and fails here, before validation starts.
func (c *Config) Renderer() (*rule.TemplateRenderer, error) {
	return rule.NewTemplateRenderer(c.Messages())
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every rule setting is well formed.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return &ValidationError{Errors: verrs}
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// ValidationError reports invalid rule settings.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msg := "invalid rule configuration:"
	for _, fe := range e.Errors {
		msg += fmt.Sprintf(" %s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
		msg += ";"
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Errors
}
