package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	runIDKey ctxKey = iota
	fileKey
	directionKey
)

// WithRunID stores the id of the current conversion batch.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// WithFile stores the name of the file being converted.
func WithFile(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, fileKey, name)
}

// WithDirection stores the conversion direction ("sheet_to_flat", "flat_to_sheet").
func WithDirection(ctx context.Context, direction string) context.Context {
	return context.WithValue(ctx, directionKey, direction)
}

// RunID returns the batch id stored in ctx.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

func stringExtractor(key ctxKey, name string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			return slog.String(name, v), true
		}
		return slog.Attr{}, false
	}
}

// RunIDExtractor adds run_id.
func RunIDExtractor() ContextExtractor { return stringExtractor(runIDKey, "run_id") }

// FileExtractor adds file.
func FileExtractor() ContextExtractor { return stringExtractor(fileKey, "file") }

// DirectionExtractor adds direction.
func DirectionExtractor() ContextExtractor { return stringExtractor(directionKey, "direction") }

// DefaultExtractors returns the run id, file and direction extractors.
func DefaultExtractors() []ContextExtractor {
	return []ContextExtractor{RunIDExtractor(), FileExtractor(), DirectionExtractor()}
}
