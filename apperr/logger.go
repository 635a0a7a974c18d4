package apperr

import (
	"context"
	"log/slog"
	"os"
)

// Logger records classified error events through a structured slog handler.
// The handler is pluggable: development builds use the default text handler
// on stderr, production injects a handler for an external sink.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger backed by the given handler. A nil handler
// falls back to a text handler writing to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return &Logger{logger: slog.New(handler)}
}

// Capture classifies err into an Event and logs it. Every error is logged at
// the moment it crosses an operation boundary, before it is surfaced.
func (l *Logger) Capture(err error, context map[string]interface{}) Event {
	ev := Classify(err, context)
	l.Log(ev, err)
	return ev
}

// Log records an already-classified event. The raw cause is included so the
// sink sees the original failure, not only the user-facing message.
func (l *Logger) Log(ev Event, cause error) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("event_id", ev.ID),
		slog.String("code", string(ev.Code)),
		slog.String("kind", string(ev.Kind)),
		slog.Int("status", ev.Status),
		slog.Time("timestamp", ev.Timestamp),
	}
	if cause != nil && cause.Error() != ev.Message {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	if ev.Context != nil {
		attrs = append(attrs, slog.Any("context", ev.Context))
	}
	l.logger.LogAttrs(context.Background(), levelFor(ev.Severity), ev.Message, attrs...)
}

func levelFor(sev Severity) slog.Level {
	switch sev {
	case SeverityError:
		return slog.LevelError
	case SeverityWarning, SeverityValidation:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
