package nbsp

import (
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/rules"
)

// Normalize runs the rule pipeline over text for a short language code.
// Unknown or empty codes get the neutral number format and no language rules.
// Each effective replacement is recorded to sink, which may be nil.
func Normalize(text, lang string, s rules.Settings, sink changelog.Sink) string {
	if text == "" {
		return text
	}

	f := locale.For(lang)
	emit := func(name, before, after string) {
		changelog.Change(sink, name, before, after)
	}

	for _, r := range pipeline {
		if r.enabled(s) {
			text = r.apply(text, f, emit)
		}
	}
	return text
}
