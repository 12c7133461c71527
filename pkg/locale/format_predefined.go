package locale

import "strings"

// FormatEN returns the English format: "1,234.56", "50%", "$5".
func FormatEN() *Format {
	return NewFormat("EN",
		WithThousandSeparator(","),
		WithDecimalSeparator("."),
		WithCurrency(CurrencyPrefixTight),
		WithPercentSpaced(false),
	)
}

// FormatFR returns the French format: "1 234,56", "50 %", "5 €" (NBSP).
func FormatFR() *Format {
	return NewFormat("FR",
		WithThousandSeparator(NBSP),
		WithCurrency(CurrencySuffixSpaced),
	)
}

// FormatPL returns the Polish format, which shares the French conventions.
func FormatPL() *Format {
	return NewFormat("PL",
		WithThousandSeparator(NBSP),
		WithCurrency(CurrencySuffixSpaced),
	)
}

// FormatDE returns the German format: "1.234,56", "5 €".
func FormatDE() *Format {
	return NewFormat("DE", WithCurrency(CurrencySuffixSpaced))
}

// FormatES returns the Spanish format. Integers of four digits or fewer stay ungrouped.
func FormatES() *Format {
	return NewFormat("ES",
		WithCurrency(CurrencySuffixSpaced),
		WithMinGroupDigits(5),
	)
}

// FormatNL returns the Dutch format: "1.234,56", "€ 5".
func FormatNL() *Format {
	return NewFormat("NL", WithCurrency(CurrencyPrefixSpaced))
}

var predefined = map[string]*Format{
	"EN": FormatEN(),
	"FR": FormatFR(),
	"PL": FormatPL(),
	"DE": FormatDE(),
	"ES": FormatES(),
	"NL": FormatNL(),
}

// For returns the format of a language code, case-insensitively.
// Locale-style codes resolve to their short form ("fr_FR" -> FR).
// Codes without dedicated conventions get the neutral format.
func For(code string) *Format {
	code = strings.ToUpper(ToShort(code))
	if f, ok := predefined[code]; ok {
		return f
	}
	return NewFormat(code)
}
