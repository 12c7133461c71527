package nbsp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fragments shared by the rule patterns. space mirrors the JavaScript \s
// class, which includes NBSP and the other Unicode spaces, so that already
// bound text matches again as a no-op.
const (
	spaceClass = `\s\x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`
	space      = `[` + spaceClass + `]`
	nonSpace   = `[^` + spaceClass + `]`
	number     = `(?:\d[\d.,\x{00A0} ]*\d|\d)`
)

// boundary flags for a pattern.
type boundary uint8

const (
	leading boundary = 1 << iota
	trailing
)

// pattern is a regexp with Unicode-aware word boundaries checked outside RE2.
type pattern struct {
	re    *regexp.Regexp
	bound boundary
}

func compile(expr string, bound boundary) pattern {
	return pattern{re: regexp.MustCompile(expr), bound: bound}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func (p pattern) accepts(text string, start, end int) bool {
	if p.bound&leading != 0 && start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if p.bound&trailing != 0 && end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// replace substitutes every non-overlapping match, scanning left to right.
// A match rejected by a boundary is retried one rune further on, the way a
// backtracking engine would continue its search. groups[0] is the whole
// match; unmatched groups are empty.
func (p pattern) replace(text string, emit func(before, after string), repl func(groups []string) string) string {
	var b strings.Builder
	copied, from := 0, 0

	for from <= len(text) {
		loc := p.re.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			break
		}
		start, end := loc[0]+from, loc[1]+from

		if !p.accepts(text, start, end) || start == end {
			_, size := utf8.DecodeRuneInString(text[start:])
			if size == 0 {
				break
			}
			from = start + size
			continue
		}

		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]+from : loc[2*i+1]+from]
			}
		}

		out := repl(groups)
		if out != groups[0] {
			b.WriteString(text[copied:start])
			b.WriteString(out)
			copied = end
			emit(groups[0], out)
		}
		from = end
	}

	if copied == 0 {
		return text
	}
	b.WriteString(text[copied:])
	return b.String()
}
