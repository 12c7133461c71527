package changelog

import (
	"context"
	"log/slog"
)

// NewSlogSink mirrors events to a logger: rule events at debug,
// notices at info and errors at warn.
func NewSlogSink(ctx context.Context, log *slog.Logger) Sink {
	return SinkFunc(func(e Event) {
		level := slog.LevelDebug
		switch e.Rule {
		case RuleNotice:
			level = slog.LevelInfo
		case RuleError:
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "change recorded",
			slog.String("rule", e.Rule),
			slog.String("before", e.Before),
			slog.String("after", e.After),
			slog.String("location", e.Location),
		)
	})
}
