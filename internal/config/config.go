// Package config loads the nbspace configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/locale"
	"github.com/dmitrymomot/nbspace/pkg/logger"
	"github.com/dmitrymomot/nbspace/pkg/rules"
	"github.com/dmitrymomot/nbspace/pkg/storage"
)

// Config is the complete application configuration.
type Config struct {
	Logging   logger.Config
	Sentry    logger.SentryConfig
	Server    ServerConfig
	Rules     RulesConfig
	Transcode TranscodeConfig
	Storage   storage.Config
	Memo      MemoConfig
}

// ServerConfig configures the HTTP API. PORT is honored when SERVER_PORT
// is unset.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxUploadSize   int64         `env:"SERVER_MAX_UPLOAD_SIZE" envDefault:"33554432"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RulesConfig points at an optional YAML rule profile.
type RulesConfig struct {
	Profile string `env:"RULES_PROFILE"`
}

// TranscodeConfig configures conversions.
type TranscodeConfig struct {
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"EN"`
	OutputCharset   string `env:"OUTPUT_CHARSET" envDefault:"utf-8"`
	FallbackCharset string `env:"FALLBACK_CHARSET" envDefault:"macintosh"`
	DuplicateAudit  bool   `env:"DUPLICATE_AUDIT" envDefault:"true"`
}

// MemoConfig configures the normalization result cache. REDIS_URL set means
// the cache is shared through Redis, otherwise it is kept in memory.
type MemoConfig struct {
	Enabled    bool          `env:"MEMO_ENABLED" envDefault:"true"`
	MaxEntries int           `env:"MEMO_MAX_ENTRIES" envDefault:"10000"`
	TTL        time.Duration `env:"MEMO_TTL" envDefault:"1h"`
	RedisURL   string        `env:"REDIS_URL"`
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be non-negative"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_REQUEST_TIMEOUT must be positive"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SERVER_SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.Server.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("SERVER_MAX_UPLOAD_SIZE must be positive"))
	}

	if code, err := locale.Normalize(c.Transcode.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_LANGUAGE: %w", err))
	} else {
		c.Transcode.DefaultLanguage = code
	}
	if _, err := charset.Parse(c.Transcode.OutputCharset); err != nil {
		errs = append(errs, fmt.Errorf("OUTPUT_CHARSET: %w", err))
	}
	if cs, err := charset.Parse(c.Transcode.FallbackCharset); err != nil {
		errs = append(errs, fmt.Errorf("FALLBACK_CHARSET: %w", err))
	} else if !cs.IsLegacy() {
		errs = append(errs, fmt.Errorf("FALLBACK_CHARSET (%q) must be an 8-bit charset", c.Transcode.FallbackCharset))
	}

	if c.Storage.Bucket == "" && c.Storage.Dir == "" {
		errs = append(errs, errors.New("one of STORAGE_DIR or S3_BUCKET is required"))
	}
	if c.Storage.Bucket != "" && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		errs = append(errs, errors.New("S3_ACCESS_KEY and S3_SECRET_KEY are required with S3_BUCKET"))
	}

	if c.Memo.Enabled && c.Memo.RedisURL == "" && c.Memo.MaxEntries <= 0 {
		errs = append(errs, errors.New("MEMO_MAX_ENTRIES must be positive"))
	}
	if c.Memo.TTL < 0 {
		errs = append(errs, errors.New("MEMO_TTL must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// OutputCharset returns the parsed output charset.
func (c *Config) OutputCharset() charset.Charset {
	cs, _ := charset.Parse(c.Transcode.OutputCharset)
	return cs
}

// FallbackCharset returns the parsed fallback charset.
func (c *Config) FallbackCharset() charset.Charset {
	cs, _ := charset.Parse(c.Transcode.FallbackCharset)
	return cs
}

// Profile loads RULES_PROFILE, or returns the default profile when unset.
func (c *Config) Profile() (rules.Profile, error) {
	if c.Rules.Profile == "" {
		return rules.DefaultProfile(), nil
	}
	dir, name := filepath.Split(c.Rules.Profile)
	if dir == "" {
		dir = "."
	}
	return rules.LoadProfile(os.DirFS(dir), name)
}

// String returns a representation safe for logs; secrets are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Server: {Addr: %q}, ", c.Server.Addr())
	fmt.Fprintf(&b, "Transcode: {DefaultLanguage: %q, OutputCharset: %q, FallbackCharset: %q, DuplicateAudit: %v}, ",
		c.Transcode.DefaultLanguage, c.Transcode.OutputCharset, c.Transcode.FallbackCharset, c.Transcode.DuplicateAudit)
	if c.Storage.Bucket != "" {
		fmt.Fprintf(&b, "Storage: {Bucket: %q, Region: %q, Keys: [MASKED]}, ", c.Storage.Bucket, c.Storage.Region)
	} else {
		fmt.Fprintf(&b, "Storage: {Dir: %q}, ", c.Storage.Dir)
	}
	redis := ""
	if c.Memo.RedisURL != "" {
		redis = "[MASKED]"
	}
	fmt.Fprintf(&b, "Memo: {Enabled: %v, MaxEntries: %d, TTL: %s, Redis: %q}, ", c.Memo.Enabled, c.Memo.MaxEntries, c.Memo.TTL, redis)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}
