package common

import "context"

// Logger is the structured logger handlers find in their context.
// Levels are DEBUG, INFO, WARN and ERROR.
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type loggerKey struct{}

// Discard drops every record
var Discard Logger = discard{}

type discard struct{}

func (discard) Log(string, string, map[string]interface{}) {}

// WithLogger returns ctx carrying logger
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the context's logger, or Discard
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}
	return Discard
}

// WithFields returns ctx whose logger adds fields to every record. Per-record metadata wins
// over a field of the same name.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	return WithLogger(ctx, fieldLogger{next: LoggerFromContext(ctx), fields: fields})
}

type fieldLogger struct {
	next   Logger
	fields map[string]interface{}
}

func (l fieldLogger) Log(level, message string, metadata map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(metadata))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}
	l.next.Log(level, message, merged)
}
