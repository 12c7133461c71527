// Package locale holds the language codes recognized by the converter and the
// typographic conventions each language uses for numbers, percentages and
// currency amounts.
//
// Codes appear in two shapes. Spreadsheets carry locale-style codes such as
// "fr_FR"; flat text files carry short uppercase codes such as "FR". ToShort
// and ToLocale convert between them; anything that does not look like a code
// passes through untouched.
//
// # Formats
//
// For returns the Format of a short code:
//
//	f := locale.For("FR")
//	f.ThousandSeparator() // "\u00a0"
//	f.DecimalSeparator()  // ","
//	f.GroupInteger("1234567") // "1\u00a0234\u00a0567"
//
// Unknown codes get a neutral Format: "." for thousands, "," for decimals,
// NBSP before the percent sign and currency amounts left as written.
//
// # Negotiation
//
// Negotiate picks the best recognized language for an Accept-Language header,
// which the HTTP API uses when a request omits the language.
package locale
