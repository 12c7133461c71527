package nbsp

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/rules"
	"github.com/dmitrymomot/nbspace/pkg/units"
)

// Rule names recorded in the change log.
const (
	RuleNumberSeparators  = "Number separators"
	RulePercent           = "Percent formatting"
	RuleCurrency          = "Currency formatting"
	RuleUnitSpacing       = "NBSP before units"
	RuleUnitCase          = "Unit case normalization"
	RuleInitials          = "NBSP after initials"
	RuleAbbreviations     = "NBSP after abbreviations"
	RuleDates             = "NBSP in dates"
	RuleFrenchPunctuation = "FR NBSP before punctuation"
	RuleFrenchGuillemets  = "FR guillemet spacing removed"
)

const nbsp = locale.NBSP

type emitFunc func(rule, before, after string)

// rule is one step of the pipeline.
type rule struct {
	name    string
	enabled func(rules.Settings) bool
	apply   func(text string, f *locale.Format, emit emitFunc) string
}

var (
	numberRe = compile(number, 0)

	percentRe = compile(`(`+number+`)`+space+`*%`, 0)

	currencyPrefixRe = compile(`([€$£])`+space+`*(`+number+`)`, 0)
	currencySuffixRe = compile(`(`+number+`)`+space+`*([€$£])`, 0)

	unitSpacedRe = compile(`(?i)(`+number+`)`+space+`+(`+units.Pattern()+`)`, trailing)
	unitTightRe  = compile(`(?i)(`+number+`)(`+units.Pattern()+`)`, trailing)
	unitCaseRe   = compile(`(?i)(`+number+`)(`+space+`+)(`+units.Pattern()+`)`, trailing)

	initialsRe      = compile(`([A-ZÀ-ÖØ-Þ])\.`+space+`+([A-ZÀ-ÖØ-Þ][A-Za-zÀ-ÖØ-öø-ÿ'-]*)`, leading)
	abbreviationsRe = compile(`(?i)(p\.|№|Vol\.)`+space+`+(\d+)`, leading)
	monthDayRe      = compile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`+space+`+(\d{1,2},)`, leading)
	yearRe          = compile(`(?i)(\d{4})`+space+`+(year)`, leading|trailing)

	frenchPunctuationRe = compile(`(`+nonSpace+`)`+space+`*([;:!?])`, 0)
	openGuillemetRe     = compile(`«[\x{00A0}\x{202F}]+`, 0)
	closeGuillemetRe    = compile(`[\x{00A0}\x{202F}]+»`, 0)
)

// pipeline is the fixed rule order.
var pipeline = []rule{
	{RuleNumberSeparators, rules.Settings.Numbers, applyNumberSeparators},
	{RulePercent, rules.Settings.Percent, applyPercent},
	{RuleCurrency, rules.Settings.Currency, applyCurrency},
	{RuleUnitSpacing, func(s rules.Settings) bool { return s.UnitSpacing }, applyUnitSpacing},
	{RuleUnitCase, func(s rules.Settings) bool { return s.UnitCaseNormalization }, applyUnitCase},
	{"Global rules", func(s rules.Settings) bool { return s.GlobalRules }, applyGlobalRules},
	{"Language rules", func(s rules.Settings) bool { return s.LanguageRules }, applyLanguageRules},
}

// emitAs binds a rule name to emit.
func emitAs(emit emitFunc, name string) func(before, after string) {
	return func(before, after string) { emit(name, before, after) }
}

func applyNumberSeparators(text string, f *locale.Format, emit emitFunc) string {
	return numberRe.replace(text, emitAs(emit, RuleNumberSeparators), func(g []string) string {
		return formatNumber(g[0], f)
	})
}

func applyPercent(text string, f *locale.Format, emit emitFunc) string {
	sep := ""
	if f.PercentSpaced() {
		sep = nbsp
	}
	return percentRe.replace(text, emitAs(emit, RulePercent), func(g []string) string {
		return g[1] + sep + "%"
	})
}

func applyCurrency(text string, f *locale.Format, emit emitFunc) string {
	e := emitAs(emit, RuleCurrency)

	switch f.Currency() {
	case locale.CurrencyPrefixTight:
		text = currencySuffixRe.replace(text, e, func(g []string) string { return g[2] + g[1] })
		return currencyPrefixRe.replace(text, e, func(g []string) string { return g[1] + g[2] })
	case locale.CurrencyPrefixSpaced:
		text = currencySuffixRe.replace(text, e, func(g []string) string { return g[2] + nbsp + g[1] })
		return currencyPrefixRe.replace(text, e, func(g []string) string { return g[1] + nbsp + g[2] })
	case locale.CurrencySuffixSpaced:
		text = currencyPrefixRe.replace(text, e, func(g []string) string { return g[2] + nbsp + g[1] })
		return currencySuffixRe.replace(text, e, func(g []string) string { return g[1] + nbsp + g[2] })
	}
	return text
}

func applyUnitSpacing(text string, _ *locale.Format, emit emitFunc) string {
	e := emitAs(emit, RuleUnitSpacing)
	bind := func(g []string) string { return g[1] + nbsp + g[2] }
	text = unitSpacedRe.replace(text, e, bind)
	return unitTightRe.replace(text, e, bind)
}

func applyUnitCase(text string, _ *locale.Format, emit emitFunc) string {
	return unitCaseRe.replace(text, emitAs(emit, RuleUnitCase), func(g []string) string {
		return g[1] + g[2] + units.Canonical(g[3])
	})
}

func applyGlobalRules(text string, _ *locale.Format, emit emitFunc) string {
	text = initialsRe.replace(text, emitAs(emit, RuleInitials), func(g []string) string {
		return g[1] + "." + nbsp + g[2]
	})
	text = abbreviationsRe.replace(text, emitAs(emit, RuleAbbreviations), func(g []string) string {
		return g[1] + nbsp + g[2]
	})
	// Date rules only see text the number rule left alone: with separators
	// on, "Jan 5, 2024" has already become "Jan 5.2024" and "2024 year"
	// "2,024 year", so they mostly fire when number_separators is off.
	dates := emitAs(emit, RuleDates)
	join := func(g []string) string { return g[1] + nbsp + g[2] }
	text = monthDayRe.replace(text, dates, join)
	return yearRe.replace(text, dates, join)
}

// wordRule binds a fixed set of short words to the following word.
type wordRule struct {
	name string
	re   pattern
}

func newWordRule(lang string, words ...string) wordRule {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return wordRule{
		name: lang + " NBSP after short words",
		re:   compile(`(?i)(`+strings.Join(quoted, "|")+`)`+space+`+`, leading),
	}
}

var shortWords = map[string]wordRule{
	"EN": newWordRule("EN", "a", "an", "the", "I"),
	"FR": newWordRule("FR", "à", "y", "en", "le", "la", "les", "un", "une", "de", "du"),
	"ES": newWordRule("ES", "a", "e", "i", "o", "u", "y", "la", "el", "un"),
	"DE": newWordRule("DE", "der", "die", "das", "ein", "eine", "Dr.", "Prof.", "Hr.", "Fr."),
	"NL": newWordRule("NL", "de", "het", "een", "in", "op", "te", "ten", "ter"),
	"PL": newWordRule("PL", "a", "i", "o", "u", "w", "z", "we", "ze", "do", "na"),
}

// Languages returns the codes that have language rules.
func Languages() []string {
	return []string{"DE", "EN", "ES", "FR", "NL", "PL"}
}

func applyLanguageRules(text string, f *locale.Format, emit emitFunc) string {
	words, ok := shortWords[f.Code()]
	if !ok {
		return text
	}

	text = words.re.replace(text, emitAs(emit, words.name), func(g []string) string {
		return g[1] + nbsp
	})

	if f.Code() != "FR" {
		return text
	}

	text = frenchPunctuationRe.replace(text, emitAs(emit, RuleFrenchPunctuation), func(g []string) string {
		return g[1] + nbsp + g[2]
	})
	guillemets := emitAs(emit, RuleFrenchGuillemets)
	text = openGuillemetRe.replace(text, guillemets, func([]string) string { return "«" })
	return closeGuillemetRe.replace(text, guillemets, func([]string) string { return "»" })
}
