// Package nbsp applies typographic normalization to localized text: locale
// number separators, percent and currency placement, no-break spaces between
// numbers and units, unit casing, and no-break spaces after initials,
// abbreviations, dates and the short words of each supported language.
//
// Rules run in a fixed order and each one only changes what it matches:
//
//  1. Number separators
//  2. Percent formatting
//  3. Currency formatting
//  4. NBSP before units
//  5. Unit case normalization
//  6. Global rules (initials, abbreviations, dates)
//  7. Language rules (EN, FR, ES, DE, NL, PL)
//
// Running the pipeline twice yields the same text as running it once.
// Every effective replacement is reported to a changelog.Sink in firing order.
//
// Word boundaries are Unicode-aware: the French rule binding "le" never fires
// inside "Contrôle".
//
//	out := nbsp.Normalize("1234,56 €", "FR", rules.Default(), nil)
//	// "1\u00a0234,56\u00a0€"
package nbsp
