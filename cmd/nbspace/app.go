package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/nbspace"
	"github.com/dmitrymomot/nbspace/internal/config"
	"github.com/dmitrymomot/nbspace/pkg/health"
	"github.com/dmitrymomot/nbspace/pkg/logger"
	"github.com/dmitrymomot/nbspace/pkg/memo"
	"github.com/dmitrymomot/nbspace/pkg/nbsp"
	"github.com/dmitrymomot/nbspace/pkg/rules"
	"github.com/dmitrymomot/nbspace/pkg/storage"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

const (
	redisAttempts = 3
	redisInterval = time.Second
)

// app is the wired dependency graph shared by all commands.
type app struct {
	cfg       *config.Config
	log       *slog.Logger
	engine    *nbsp.Engine
	store     storage.Storage
	converter *nbspace.Converter
	checks    health.Checks
	closers   []func() error
}

// overrides are command-line values that win over the environment.
type overrides struct {
	profile  string
	charset  string
	fallback string
	language string
	noAudit  bool
}

func newApp(ctx context.Context, o overrides) (*app, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, err
	}
	if o.profile != "" {
		cfg.Rules.Profile = o.profile
	}
	if o.charset != "" {
		cfg.Transcode.OutputCharset = o.charset
	}
	if o.fallback != "" {
		cfg.Transcode.FallbackCharset = o.fallback
	}
	if o.language != "" {
		cfg.Transcode.DefaultLanguage = o.language
	}
	if o.noAudit {
		cfg.Transcode.DuplicateAudit = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		log:    logger.NewWithSentry(cfg.Logging, cfg.Sentry, logger.DefaultExtractors()...),
		checks: health.Checks{},
	}
	if cfg.Sentry.DSN != "" {
		a.closers = append(a.closers, func() error {
			sentry.Flush(2 * time.Second)
			return nil
		})
	}

	profile, err := cfg.Profile()
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	m, err := a.openMemo(ctx)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	var engineOpts []nbsp.Option
	if m != nil {
		engineOpts = append(engineOpts, nbsp.WithMemo(m))
	}
	a.engine = nbsp.NewEngine(engineOpts...)

	if a.store, err = storage.Open(cfg.Storage); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.checks.AddPinger("storage", a.store)

	a.converter = nbspace.New(
		nbspace.WithProfile(profile),
		nbspace.WithOutputCharset(cfg.OutputCharset()),
		nbspace.WithFallbackCharset(cfg.FallbackCharset()),
		nbspace.WithStorage(a.store),
		nbspace.WithLogger(a.log),
		nbspace.WithTranscodeOptions(
			transcode.WithNormalizer(a.engine),
			transcode.WithDefaultLanguage(cfg.Transcode.DefaultLanguage),
			transcode.WithDuplicateAudit(cfg.Transcode.DuplicateAudit),
		),
	)

	a.log.Debug("configuration loaded", slog.String("config", cfg.String()))
	return a, nil
}

// openMemo returns nil when the cache is disabled.
func (a *app) openMemo(ctx context.Context) (*memo.Memo, error) {
	mc := a.cfg.Memo
	if !mc.Enabled {
		return nil, nil
	}

	if mc.RedisURL != "" {
		client, err := memo.OpenRedis(ctx, mc.RedisURL, redisAttempts, redisInterval)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		store := memo.NewRedis(client, memo.WithRedisTTL(mc.TTL))
		a.checks.AddPinger("memo", store)
		return memo.New(store, memo.WithLogger(a.log)), nil
	}

	store := memo.NewMemory(memo.WithMaxEntries(mc.MaxEntries), memo.WithTTL(mc.TTL))
	a.closers = append(a.closers, store.Close)
	return memo.New(store, memo.WithLogger(a.log)), nil
}

// settings are used by commands that normalize without converting.
func (a *app) settings() rules.Settings {
	return a.converter.Profile().SheetToFlat
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
