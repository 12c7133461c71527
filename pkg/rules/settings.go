package rules

import (
	"fmt"
	"slices"
	"strings"
)

// Toggle names as they appear in profiles, CLI flags and API payloads.
const (
	NumericFormatting     = "numeric_formatting"
	NumberSeparators      = "number_separators"
	PercentFormatting     = "percent_formatting"
	CurrencyFormatting    = "currency_formatting"
	UnitSpacing           = "unit_spacing"
	UnitCaseNormalization = "unit_case_normalization"
	StripOuterQuotes      = "strip_outer_quotes"
	CollapseWhitespace    = "collapse_whitespace"
	NonBreakingHyphen     = "non_breaking_hyphen"
	GlobalRules           = "global_rules"
	LanguageRules         = "language_rules"
)

// Settings selects the rules that run. The zero value disables everything;
// use Default for the usual all-enabled record.
type Settings struct {
	NumericFormatting     bool `json:"numeric_formatting" yaml:"numeric_formatting"`
	NumberSeparators      bool `json:"number_separators" yaml:"number_separators"`
	PercentFormatting     bool `json:"percent_formatting" yaml:"percent_formatting"`
	CurrencyFormatting    bool `json:"currency_formatting" yaml:"currency_formatting"`
	UnitSpacing           bool `json:"unit_spacing" yaml:"unit_spacing"`
	UnitCaseNormalization bool `json:"unit_case_normalization" yaml:"unit_case_normalization"`
	StripOuterQuotes      bool `json:"strip_outer_quotes" yaml:"strip_outer_quotes"`
	CollapseWhitespace    bool `json:"collapse_whitespace" yaml:"collapse_whitespace"`
	NonBreakingHyphen     bool `json:"non_breaking_hyphen" yaml:"non_breaking_hyphen"`
	GlobalRules           bool `json:"global_rules" yaml:"global_rules"`
	LanguageRules         bool `json:"language_rules" yaml:"language_rules"`
}

// Default returns settings with every rule enabled.
func Default() Settings {
	return Settings{
		NumericFormatting:     true,
		NumberSeparators:      true,
		PercentFormatting:     true,
		CurrencyFormatting:    true,
		UnitSpacing:           true,
		UnitCaseNormalization: true,
		StripOuterQuotes:      true,
		CollapseWhitespace:    true,
		NonBreakingHyphen:     true,
		GlobalRules:           true,
		LanguageRules:         true,
	}
}

func (s *Settings) fields() map[string]*bool {
	return map[string]*bool{
		NumericFormatting:     &s.NumericFormatting,
		NumberSeparators:      &s.NumberSeparators,
		PercentFormatting:     &s.PercentFormatting,
		CurrencyFormatting:    &s.CurrencyFormatting,
		UnitSpacing:           &s.UnitSpacing,
		UnitCaseNormalization: &s.UnitCaseNormalization,
		StripOuterQuotes:      &s.StripOuterQuotes,
		CollapseWhitespace:    &s.CollapseWhitespace,
		NonBreakingHyphen:     &s.NonBreakingHyphen,
		GlobalRules:           &s.GlobalRules,
		LanguageRules:         &s.LanguageRules,
	}
}

// Names returns every toggle name in sorted order.
func Names() []string {
	var s Settings
	names := make([]string, 0, 11)
	for name := range s.fields() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// With returns a copy of s with the named toggle set.
func (s Settings) With(name string, enabled bool) (Settings, error) {
	field, ok := s.fields()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	*field = enabled
	return s, nil
}

// Without returns a copy of s with each named toggle disabled.
// Empty names are skipped so comma-separated flag values can be passed as is.
func (s Settings) Without(names ...string) (Settings, error) {
	var err error
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if s, err = s.With(name, false); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Numbers reports whether the separator rule runs.
func (s Settings) Numbers() bool { return s.NumericFormatting && s.NumberSeparators }

// Percent reports whether the percent rule runs.
func (s Settings) Percent() bool { return s.NumericFormatting && s.PercentFormatting }

// Currency reports whether the currency rule runs.
func (s Settings) Currency() bool { return s.NumericFormatting && s.CurrencyFormatting }

// Fingerprint encodes the toggles as a short stable string for cache keys.
func (s Settings) Fingerprint() string {
	names := Names()
	fields := s.fields()
	b := make([]byte, len(names))
	for i, name := range names {
		b[i] = '0'
		if *fields[name] {
			b[i] = '1'
		}
	}
	return string(b)
}
