package nbsp

import (
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/locale"
)

// formatNumber re-renders a numeric run with the separators of f.
// It returns run unchanged when no digits remain in the integer part.
func formatNumber(run string, f *locale.Format) string {
	cleaned := strings.ReplaceAll(run, locale.NBSP, " ")
	sepCount := strings.Count(cleaned, ".") + strings.Count(cleaned, ",")
	decimalIndex := max(strings.LastIndex(cleaned, "."), strings.LastIndex(cleaned, ","))

	intPart, fracPart := cleaned, ""
	if decimalIndex > -1 && !isGrouping(cleaned, decimalIndex, sepCount) {
		intPart, fracPart = cleaned[:decimalIndex], cleaned[decimalIndex+1:]
	}

	intPart = stripSeparators(intPart)
	if intPart == "" {
		return run
	}
	return f.FormatNumber(intPart, stripSeparators(fracPart))
}

// isGrouping reports whether the separator at idx groups thousands rather
// than starting a fraction. A lone separator followed by exactly three digits
// groups unless the integer part is "0" or is already grouped by spaces
// ("1 234,567"). Two or more identical separators group when every group
// after the first has exactly three digits.
func isGrouping(cleaned string, idx, sepCount int) bool {
	switch {
	case sepCount == 1:
		head, tail := cleaned[:idx], cleaned[idx+1:]
		return isDigits(tail) && len(tail) == 3 &&
			stripSeparators(head) != "0" && !spaceGrouped(head)
	case sepCount >= 2:
		sep := cleaned[idx : idx+1]
		if strings.Count(cleaned, sep) != sepCount {
			return false
		}
		groups := strings.Split(cleaned, sep)
		for _, g := range groups[1:] {
			if len(g) != 3 || !isDigits(g) {
				return false
			}
		}
		return true
	}
	return false
}

// spaceGrouped reports whether s is a digit run split by spaces into
// thousands groups, such as "1 234" or "12 345 678".
func spaceGrouped(s string) bool {
	groups := strings.Split(s, " ")
	if len(groups) < 2 || len(groups[0]) > 3 || !isDigits(groups[0]) {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !isDigits(g) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stripSeparators drops separators and spaces, keeping the digits.
func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
}
