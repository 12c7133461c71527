package units

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// tokens are the simple units matched after a number.
var tokens = []string{
	"W", "kW", "MW", "GW", "hp", "PS", "CV",
	"V", "kV", "mV", "A", "mA", "Hz", "kHz", "MHz", "GHz", "Ohm", "Ω",
	"Wh", "kWh", "MWh", "J", "kJ", "F", "µF", "μF", "nF",
	"N", "kN", "Kgf", "kgf", "Pa", "kPa", "bar", "Nm",
	"km", "m", "cm", "mm", "kg", "g", "mg", "l", "ml",
}

// displayForms are the canonical spellings of the simple units.
var displayForms = []string{
	"W", "kW", "MW", "GW", "hp", "PS", "CV",
	"V", "kV", "mV", "A", "mA", "Hz", "kHz", "MHz", "GHz", "Ohm",
	"Wh", "kWh", "MWh", "J", "kJ", "F", "μF", "nF",
	"N", "kN", "kgf", "Pa", "kPa", "bar", "Nm",
	"km", "m", "cm", "mm", "kg", "g", "mg", "l", "ml",
}

// canonical maps a lowercased token to its display form.
var canonical = func() map[string]string {
	m := make(map[string]string, len(displayForms)+2)
	for _, d := range displayForms {
		m[strings.ToLower(d)] = d
	}
	// micro sign and ASCII spellings of microfarad
	m["µf"] = "μF"
	m["uf"] = "μF"
	return m
}()

// composites have fixed display forms that segment-wise casing cannot produce.
var composites = map[string]string{
	"kg/h/n": "kg/h/N",
	"m/s2":   "m/s²",
}

// compositePattern matches letter runs joined by "." or "/", e.g. "km/h".
const compositePattern = `[A-Za-zΩµμ]+[0-9]*(?:[./][A-Za-zΩµμ0-9]+)+`

var segmentRe = regexp.MustCompile(`([A-Za-zΩµμ]+)([0-9]*)`)

// Tokens returns a copy of the simple unit tokens.
func Tokens() []string {
	return slices.Clone(tokens)
}

// Pattern returns a regexp fragment matching one unit, without a capture group.
// Composite units come first and simple tokens are ordered longest first,
// so the alternation always prefers the longest unit at a position.
func Pattern() string {
	sorted := slices.Clone(tokens)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	quoted := make([]string, len(sorted))
	for i, tok := range sorted {
		quoted[i] = regexp.QuoteMeta(tok)
	}

	return `(?:` + compositePattern + `|` + strings.Join(quoted, "|") + `)`
}

// IsComposite reports whether a unit contains a "." or "/" joint.
func IsComposite(unit string) bool {
	return strings.ContainsAny(unit, "./")
}

// Canonical returns the display form of a unit token.
// Unknown tokens are returned unchanged; any token containing "Ω" becomes "Ω".
func Canonical(unit string) string {
	if IsComposite(unit) {
		return canonicalComposite(unit)
	}
	return canonicalSimple(unit)
}

func canonicalSimple(token string) string {
	if strings.Contains(token, "Ω") {
		return "Ω"
	}
	if c, ok := canonical[strings.ToLower(token)]; ok {
		return c
	}
	return token
}

func canonicalComposite(unit string) string {
	if c, ok := composites[strings.ToLower(unit)]; ok {
		return c
	}
	return segmentRe.ReplaceAllStringFunc(unit, func(segment string) string {
		m := segmentRe.FindStringSubmatch(segment)
		return canonicalSimple(m[1]) + m[2]
	})
}
