// Package config loads TidySQL's configuration: dialect selection and
// per-rule severity/options, the way the teacher's cli/cmd/config.go
// loads sqlcode.yaml, but decodable from either YAML or TOML (the
// original tidysql-config crate is TOML-first; the teacher is
// YAML-first — this package supports both onto the same struct).
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Severity is a diagnostic's level. Allow suppresses a rule entirely;
// the lint dispatcher gates on it and never attaches it to an emitted
// diagnostic (§3.1).
type Severity int

const (
	Error Severity = iota
	Warn
	Info
	Hint
	Allow
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	case Hint:
		return "hint"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

var severityNames = map[string]Severity{
	"error": Error,
	"warn":  Warn,
	"info":  Info,
	"hint":  Hint,
	"allow": Allow,
}

// UnmarshalText lets Severity decode directly from YAML/TOML config
// values ("warn", "error", ...) via encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, ok := severityNames[string(text)]
	if !ok {
		return fmt.Errorf("config: unknown severity %q", text)
	}
	*s = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Core holds the settings the core pipeline reads directly (§3.4).
type Core struct {
	Dialect string `yaml:"dialect" toml:"dialect"`
}

// DisallowNamesOptions is §4.4's options table. Regexes is decoded as
// raw patterns; callers needing compiled matchers use CompiledRegexes.
type DisallowNamesOptions struct {
	Names   []string `yaml:"names" toml:"names"`
	Regexes []string `yaml:"regexes" toml:"regexes"`
}

// UnmarshalYAML accepts either the full table or a bare list of names,
// per §4.4 ("Deserialisation accepts either the full table {names,
// regexes} or a bare list of names as shorthand").
func (o *DisallowNamesOptions) UnmarshalYAML(unmarshal func(any) error) error {
	var names []string
	if err := unmarshal(&names); err == nil {
		o.Names = names
		return nil
	}
	type plain DisallowNamesOptions
	return unmarshal((*plain)(o))
}

// CompiledRegexes compiles o.Regexes, skipping patterns that fail to
// compile rather than failing the whole rule (the loader, not the
// core, is responsible for rejecting bad config — see §6.2).
func (o DisallowNamesOptions) CompiledRegexes() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(o.Regexes))
	for _, pat := range o.Regexes {
		if re, err := regexp.Compile(pat); err == nil {
			out = append(out, re)
		}
	}
	return out
}

// DisallowNamesRule is the lints.disallow_names table.
type DisallowNamesRule struct {
	Level   Severity             `yaml:"level" toml:"level"`
	Options DisallowNamesOptions `yaml:"options" toml:"options"`
}

// ExplicitUnionRule is the lints.explicit_union table (§4.5); it has
// no rule-specific options.
type ExplicitUnionRule struct {
	Level Severity `yaml:"level" toml:"level"`
}

// CapitalisationPolicy is the shared case-policy enum for both
// inconsistent_capitalisation and keyword_case (§4.6).
type CapitalisationPolicy int

const (
	Consistent CapitalisationPolicy = iota
	Upper
	Lower
	Pascal
	Capitalise
	Snake
	Camel
)

var policyNames = map[string]CapitalisationPolicy{
	"consistent": Consistent,
	"upper":      Upper,
	"lower":      Lower,
	"pascal":     Pascal,
	"capitalise": Capitalise,
	"snake":      Snake,
	"camel":      Camel,
}

var policyStrings = map[CapitalisationPolicy]string{
	Consistent: "consistent",
	Upper:      "upper",
	Lower:      "lower",
	Pascal:     "pascal",
	Capitalise: "capitalise",
	Snake:      "snake",
	Camel:      "camel",
}

func (p CapitalisationPolicy) String() string { return policyStrings[p] }

func (p *CapitalisationPolicy) UnmarshalText(text []byte) error {
	v, ok := policyNames[string(text)]
	if !ok {
		return fmt.Errorf("config: unknown capitalisation policy %q", text)
	}
	*p = v
	return nil
}

func (p CapitalisationPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// IsIgnoredWord reports whether text matches one of words
// case-insensitively, or one of regexes.
func IsIgnoredWord(text string, words []string, regexes []string) bool {
	for _, w := range words {
		if strings.EqualFold(text, w) {
			return true
		}
	}
	for _, pat := range regexes {
		re, err := regexp.Compile(pat)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// InconsistentCapitalisationOptions is §4.6's options table.
type InconsistentCapitalisationOptions struct {
	CapitalisationPolicy CapitalisationPolicy `yaml:"capitalisation_policy" toml:"capitalisation_policy"`
	IgnoreWords          []string             `yaml:"ignore_words" toml:"ignore_words"`
	IgnoreWordsRegex     []string             `yaml:"ignore_words_regex" toml:"ignore_words_regex"`
}

// InconsistentCapitalisationRule is the lints.inconsistent_capitalisation table.
type InconsistentCapitalisationRule struct {
	Level   Severity                          `yaml:"level" toml:"level"`
	Options InconsistentCapitalisationOptions `yaml:"options" toml:"options"`
}

// KeywordCaseOptions is the supplemented rule's options (§ Supplemented
// features: "same options shape (required_case, ignore_words) minus
// the Consistent inference complexity").
type KeywordCaseOptions struct {
	RequiredCase CapitalisationPolicy `yaml:"required_case" toml:"required_case"`
	IgnoreWords  []string             `yaml:"ignore_words" toml:"ignore_words"`
}

// KeywordCaseRule is the lints.keyword_case table.
type KeywordCaseRule struct {
	Level   Severity           `yaml:"level" toml:"level"`
	Options KeywordCaseOptions `yaml:"options" toml:"options"`
}

// Lints is the lints.<rule> table (§3.4, §6.2).
type Lints struct {
	DisallowNames              DisallowNamesRule              `yaml:"disallow_names" toml:"disallow_names"`
	ExplicitUnion              ExplicitUnionRule              `yaml:"explicit_union" toml:"explicit_union"`
	InconsistentCapitalisation InconsistentCapitalisationRule `yaml:"inconsistent_capitalisation" toml:"inconsistent_capitalisation"`
	KeywordCase                KeywordCaseRule                `yaml:"keyword_case" toml:"keyword_case"`
}

// Config is the external collaborator's config type (§3.4): read-only
// from the core's perspective, owned by this package and by
// cmd/tidysql's discovery/flag layer.
type Config struct {
	Core  Core  `yaml:"core" toml:"core"`
	Lints Lints `yaml:"lints" toml:"lints"`
}

// Default returns a Config with ANSI dialect and every rule at its
// zero-value (Error) severity — callers wanting "everything off"
// should set each rule's Level to Allow explicitly.
func Default() Config {
	return Config{Core: Core{Dialect: "ansi"}}
}

// LoadYAML decodes a Config from YAML, the format the teacher's
// cli/cmd/config.go reads for sqlcode.yaml.
func LoadYAML(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: invalid yaml: %w", err)
	}
	return c, nil
}

// LoadTOML decodes a Config from TOML, the format the original
// tidysql-config crate used for tidysql.toml.
func LoadTOML(data []byte) (Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: invalid toml: %w", err)
	}
	return c, nil
}
