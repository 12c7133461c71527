package locale

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	localeCodeRe = regexp.MustCompile(`(?i)^([a-z]{2})_([a-z]{2})$`)
	shortCodeRe  = regexp.MustCompile(`(?i)^[a-z]{2}$`)
)

// recognized lists the short codes that count as a language marker in sheets.
var recognized = []string{
	"AR", "BG", "CS", "DA", "DE", "EL", "EN", "ES", "ET", "FI", "FR", "HE",
	"HR", "HU", "IT", "JA", "KO", "LT", "LV", "NL", "NO", "PL", "PT", "RO",
	"RU", "SK", "SL", "SR", "SV", "TR", "UK", "ZH",
}

// Recognized returns a copy of the recognized short codes in sorted order.
func Recognized() []string {
	return slices.Clone(recognized)
}

// IsRecognized reports whether code is a recognized short code.
// Matching is exact: short codes are always uppercase in flat files.
func IsRecognized(code string) bool {
	_, found := slices.BinarySearch(recognized, code)
	return found
}

// IsLanguageCode reports whether a cell value marks a language:
// either a locale-style code ("fr_FR", any case) or a recognized short code.
func IsLanguageCode(value string) bool {
	value = strings.TrimSpace(value)
	return localeCodeRe.MatchString(value) || IsRecognized(value)
}

// ToShort converts a locale-style code to its short uppercase form, taken
// from the part after the underscore ("fr_FR" -> "FR"). Other values are
// returned trimmed and otherwise unchanged.
func ToShort(code string) string {
	code = strings.TrimSpace(code)
	if m := localeCodeRe.FindStringSubmatch(code); m != nil {
		return strings.ToUpper(m[2])
	}
	return code
}

// ToLocale converts a two-letter code to locale style ("FR" -> "fr_FR").
// Other values are returned trimmed and otherwise unchanged.
func ToLocale(code string) string {
	code = strings.TrimSpace(code)
	if !shortCodeRe.MatchString(code) {
		return code
	}
	return strings.ToLower(code) + "_" + strings.ToUpper(code)
}

// Normalize returns the uppercase short form of any code.
// It fails for values that are neither locale-style nor two letters.
func Normalize(code string) (string, error) {
	short := ToShort(code)
	if !shortCodeRe.MatchString(short) {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return strings.ToUpper(short), nil
}
