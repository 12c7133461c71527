package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/nbsp"
	"github.com/dmitrymomot/nbspace/pkg/rules"
)

// Reserved header cells.
const (
	CodeHeader = "code"
	KeyHeader  = "Key"
	DateHeader = "Date"
)

// DateLayout formats the generated date column (YY-MM-DD).
const DateLayout = "06-01-02"

// Normalizer rewrites cell text under a language. *nbsp.Engine implements it.
type Normalizer interface {
	Normalize(ctx context.Context, text, lang string, s rules.Settings, sink changelog.Sink) string
}

// Result is the outcome of one conversion.
type Result struct {
	Matrix Matrix
	// Warnings holds aggregate messages the caller should surface,
	// such as the duplicate-key summary.
	Warnings []string
}

// Transcoder converts between the sheet and flat layouts.
// It holds no per-conversion state and is safe for concurrent use.
type Transcoder struct {
	normalizer      Normalizer
	defaultLanguage string
	charset         charset.Charset
	duplicateAudit  bool
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithNormalizer replaces the default uncached engine.
func WithNormalizer(n Normalizer) Option {
	return func(t *Transcoder) {
		if n != nil {
			t.normalizer = n
		}
	}
}

// WithDefaultLanguage sets the language injected when a sheet or flat file
// carries no language keys. Locale-style codes are accepted. Defaults to EN.
func WithDefaultLanguage(code string) Option {
	return func(t *Transcoder) {
		if code = strings.ToUpper(locale.ToShort(code)); code != "" {
			t.defaultLanguage = code
		}
	}
}

// WithCharset sets the charset flat output is written in. Non-breaking
// hyphens are replaced when the charset cannot carry them. Defaults to UTF-8.
func WithCharset(cs charset.Charset) Option {
	return func(t *Transcoder) {
		if cs != "" {
			t.charset = cs
		}
	}
}

// WithDuplicateAudit toggles the duplicate language key audit of FlatToSheet.
// Enabled by default.
func WithDuplicateAudit(enabled bool) Option {
	return func(t *Transcoder) {
		t.duplicateAudit = enabled
	}
}

// WithClock sets the time source for the generated date column.
func WithClock(now func() time.Time) Option {
	return func(t *Transcoder) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLogger sets the logger for conversion summaries.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transcoder) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a Transcoder.
func New(opts ...Option) *Transcoder {
	t := &Transcoder{
		normalizer:      nbsp.NewEngine(),
		defaultLanguage: "EN",
		charset:         charset.UTF8,
		duplicateAudit:  true,
		now:             time.Now,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DefaultLanguage returns the injected language code.
func (t *Transcoder) DefaultLanguage() string { return t.defaultLanguage }

// cellRef renders zero-based coordinates as a spreadsheet reference ("B3").
// Negative coordinates have no reference.
func cellRef(row, col int) string {
	if row < 0 || col < 0 {
		return ""
	}
	return fmt.Sprintf("%s%d", reference.IndexToColumn(uint32(col)), row+1)
}

// rowLanguage returns the uppercase short code held by a key cell.
func rowLanguage(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.ToUpper(locale.ToShort(value))
}
