package logging

import (
	"context"

	"go.uber.org/zap"
)

type Logger struct {
	*zap.Logger
}

func New(level, format string) (*Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if level != "" {
		if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}
	lg, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{lg}, nil
}

type traceIDKey struct{}
type userIDKey struct{}

// WithTraceID attaches the request correlation id for WithContext to pick up.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// WithUserID attaches the authenticated user id for WithContext to pick up.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// WithContext enriches the logger with trace_id / user_id when the request
// middleware has placed them on the context.
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.Logger
	}
	fields := make([]zap.Field, 0, 2)
	if v, ok := ctx.Value(traceIDKey{}).(string); ok && v != "" {
		fields = append(fields, zap.String("trace_id", v))
	}
	if v, ok := ctx.Value(userIDKey{}).(int64); ok && v > 0 {
		fields = append(fields, zap.Int64("user_id", v))
	}
	if len(fields) == 0 {
		return l.Logger
	}
	return l.Logger.With(fields...)
}
