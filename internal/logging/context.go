package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger stored in ctx. Without one it falls back to
// zerolog's default context logger, which drops everything.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags entries logged through the returned context with the
// subsystem that wrote them (dock, popout, headless-host, ...).
func WithComponent(ctx context.Context, component string) context.Context {
	return withStr(ctx, "component", component)
}

// WithPopoutID tags entries with the popout they concern.
func WithPopoutID(ctx context.Context, popoutID string) context.Context {
	return withStr(ctx, "popout_id", popoutID)
}

func withStr(ctx context.Context, key, value string) context.Context {
	child := FromContext(ctx).With().Str(key, value).Logger()
	return child.WithContext(ctx)
}
