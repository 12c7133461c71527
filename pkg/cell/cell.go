package cell

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
)

// Rule names recorded in the change log.
const (
	RuleOuterQuotes      = "Outer quotes removed"
	RuleLineBreaks       = "Line breaks removed"
	RuleWhitespace       = "Whitespace normalization"
	RuleNarrowSpaces     = "FR narrow spaces normalized"
	RuleGuillemetSpacing = "FR guillemet spacing removed"
	RuleHyphen           = "Non-breaking hyphen replaced"
)

const (
	nbsp              = '\u00a0'
	narrowNBSP        = '\u202f'
	nonBreakingHyphen = '\u2011'
)

// quotePairs maps an opening quote to the closing quote that pairs with it.
var quotePairs = map[rune]rune{
	'"': '"',
	'«': '»',
	'“': '”',
	'„': '“',
}

var (
	lineBreaksRe     = regexp.MustCompile(`[\r\n]+`)
	multiSpaceRe     = regexp.MustCompile(` {2,}`)
	openGuillemetRe  = regexp.MustCompile(`«[\x{00A0}\x{202F}]+`)
	closeGuillemetRe = regexp.MustCompile(`[\x{00A0}\x{202F}]+»`)
)

// StripOuterQuotes removes one pair of matching outer quotes.
// Texts shorter than two characters are never stripped.
func StripOuterQuotes(text string, enabled bool, sink changelog.Sink) string {
	if !enabled {
		return text
	}

	runes := []rune(text)
	if len(runes) < 2 {
		return text
	}

	closing, ok := quotePairs[runes[0]]
	if !ok || runes[len(runes)-1] != closing {
		return text
	}

	stripped := string(runes[1 : len(runes)-1])
	changelog.Change(sink, RuleOuterQuotes, text, stripped)
	return stripped
}

// CollapseWhitespace replaces line breaks with a space, collapses runs of
// spaces to one and trims the result. Line-break removal and whitespace
// collapsing are recorded as separate events.
func CollapseWhitespace(text string, enabled bool, sink changelog.Sink) string {
	if !enabled {
		return text
	}

	flat := lineBreaksRe.ReplaceAllString(text, " ")
	changelog.Change(sink, RuleLineBreaks, text, flat)

	collapsed := strings.TrimSpace(multiSpaceRe.ReplaceAllString(flat, " "))
	changelog.Change(sink, RuleWhitespace, flat, collapsed)
	return collapsed
}

// FrenchNarrowSpaces converts narrow no-break spaces to regular NBSP and
// removes no-break spacing just inside guillemets.
func FrenchNarrowSpaces(text string, enabled bool, sink changelog.Sink) string {
	if !enabled {
		return text
	}

	normalized := strings.ReplaceAll(text, string(narrowNBSP), string(nbsp))
	changelog.Change(sink, RuleNarrowSpaces, text, normalized)

	tight := openGuillemetRe.ReplaceAllString(normalized, "«")
	tight = closeGuillemetRe.ReplaceAllString(tight, "»")
	changelog.Change(sink, RuleGuillemetSpacing, normalized, tight)

	return tight
}

// NormalizeNonBreakingHyphen replaces U+2011 with an ASCII hyphen.
// Callers apply it when the output charset cannot represent U+2011.
func NormalizeNonBreakingHyphen(text string, enabled bool, sink changelog.Sink) string {
	if !enabled || !strings.ContainsRune(text, nonBreakingHyphen) {
		return text
	}

	replaced := strings.ReplaceAll(text, string(nonBreakingHyphen), "-")
	changelog.Change(sink, RuleHyphen, text, replaced)
	return replaced
}
