package nbspace

import (
	"log/slog"

	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/rules"
	"github.com/dmitrymomot/nbspace/pkg/storage"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

// Option configures a Converter.
type Option func(*Converter)

// WithProfile sets the rule settings of both directions.
// Defaults to every rule enabled.
func WithProfile(p rules.Profile) Option {
	return func(c *Converter) {
		c.profile = p
	}
}

// WithOutputCharset sets the charset flat files are written in.
// Defaults to UTF-8.
func WithOutputCharset(cs charset.Charset) Option {
	return func(c *Converter) {
		if cs != "" {
			c.outputCharset = cs
		}
	}
}

// WithFallbackCharset sets the 8-bit charset assumed for flat input that is
// neither UTF-8 nor UTF-16. Defaults to Mac Roman.
func WithFallbackCharset(cs charset.Charset) Option {
	return func(c *Converter) {
		if cs.IsLegacy() {
			c.fallbackCharset = cs
		}
	}
}

// WithStorage uploads every output and its audit report under the batch
// run id. Without storage outputs are only returned.
func WithStorage(s storage.Storage) Option {
	return func(c *Converter) {
		c.store = s
	}
}

// WithLogger sets the logger. Change events are mirrored at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTranscodeOptions passes options to the underlying transcoder.
// The output charset and logger are set by the Converter and applied first.
func WithTranscodeOptions(opts ...transcode.Option) Option {
	return func(c *Converter) {
		c.transcodeOpts = append(c.transcodeOpts, opts...)
	}
}
