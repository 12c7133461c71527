// Package logger configures log/slog for the converter.
//
// New builds a JSON or text handler at the configured level and wraps it in
// a LogHandlerDecorator that adds context-scoped attributes on every call.
// The package ships extractors for the conversion run id, the file being
// converted and the conversion direction:
//
//	ctx = logger.WithRunID(ctx, runID)
//	ctx = logger.WithFile(ctx, "menu [A12].xlsx")
//	log := logger.New(logger.Config{Level: "debug"}, logger.DefaultExtractors()...)
//	log.InfoContext(ctx, "file converted")
//	// {"level":"INFO","msg":"file converted","run_id":"...","file":"menu [A12].xlsx"}
//
// NewWithSentry additionally forwards warnings and errors to Sentry. Without a
// DSN, or when the SDK fails to initialize, it logs to the console only.
//
// Libraries in this module never build loggers themselves. They accept a
// *slog.Logger through an option and discard output by default.
package logger
