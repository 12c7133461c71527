package locale

import "strings"

// NBSP is the no-break space inserted by the normalization rules.
const NBSP = "\u00a0"

// CurrencyPlacement describes where a currency symbol goes relative to the amount.
type CurrencyPlacement int

const (
	// CurrencyAsWritten leaves amounts untouched.
	CurrencyAsWritten CurrencyPlacement = iota
	// CurrencyPrefixTight moves the symbol before the amount with no space ("$5").
	CurrencyPrefixTight
	// CurrencyPrefixSpaced moves the symbol before the amount, joined by NBSP ("€ 5").
	CurrencyPrefixSpaced
	// CurrencySuffixSpaced moves the symbol after the amount, joined by NBSP ("5 €").
	CurrencySuffixSpaced
)

// Format contains the typographic conventions of one language.
// It is immutable after creation and safe for concurrent use.
type Format struct {
	code              string
	thousandSeparator string
	decimalSeparator  string
	currency          CurrencyPlacement
	percentSpaced     bool
	// minGroupDigits is the shortest integer part that receives thousands separators.
	minGroupDigits int
}

// FormatOption configures a Format during construction.
type FormatOption func(*Format)

// NewFormat creates a Format with the given options.
// Without options it describes the neutral convention used for unknown languages.
func NewFormat(code string, opts ...FormatOption) *Format {
	f := &Format{
		code:              strings.ToUpper(code),
		thousandSeparator: ".",
		decimalSeparator:  ",",
		currency:          CurrencyAsWritten,
		percentSpaced:     true,
		minGroupDigits:    4,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithThousandSeparator sets the thousands separator.
func WithThousandSeparator(sep string) FormatOption {
	return func(f *Format) {
		f.thousandSeparator = sep
	}
}

// WithDecimalSeparator sets the decimal separator.
func WithDecimalSeparator(sep string) FormatOption {
	return func(f *Format) {
		f.decimalSeparator = sep
	}
}

// WithCurrency sets the currency symbol placement.
func WithCurrency(p CurrencyPlacement) FormatOption {
	return func(f *Format) {
		f.currency = p
	}
}

// WithPercentSpaced controls whether an NBSP precedes the percent sign.
func WithPercentSpaced(spaced bool) FormatOption {
	return func(f *Format) {
		f.percentSpaced = spaced
	}
}

// WithMinGroupDigits sets the shortest integer part that gets grouped.
// Values below 4 are ignored since shorter integers never need a separator.
func WithMinGroupDigits(n int) FormatOption {
	return func(f *Format) {
		if n >= 4 {
			f.minGroupDigits = n
		}
	}
}

// Code returns the short uppercase code the format was built for.
func (f *Format) Code() string { return f.code }

// ThousandSeparator returns the thousands separator.
func (f *Format) ThousandSeparator() string { return f.thousandSeparator }

// DecimalSeparator returns the decimal separator.
func (f *Format) DecimalSeparator() string { return f.decimalSeparator }

// Currency returns the currency symbol placement.
func (f *Format) Currency() CurrencyPlacement { return f.currency }

// PercentSpaced reports whether an NBSP goes between a number and "%".
func (f *Format) PercentSpaced() bool { return f.percentSpaced }

// GroupInteger inserts the thousands separator into a run of digits,
// counting groups of three from the right.
func (f *Format) GroupInteger(digits string) string {
	n := len(digits)
	if n < f.minGroupDigits {
		return digits
	}

	var b strings.Builder
	b.Grow(n + (n/3)*len(f.thousandSeparator))

	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < n; i += 3 {
		b.WriteString(f.thousandSeparator)
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// FormatNumber renders an integer part and an optional fraction with the
// format's separators. Both parts must contain digits only.
func (f *Format) FormatNumber(intPart, fracPart string) string {
	grouped := f.GroupInteger(intPart)
	if fracPart == "" {
		return grouped
	}
	return grouped + f.decimalSeparator + fracPart
}
