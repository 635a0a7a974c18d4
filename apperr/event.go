package apperr

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Severity is the display category of a classified failure, used by the view
// layer to decide how an event is rendered and dismissed.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeverityValidation Severity = "validation"
	SeverityNetwork    Severity = "network"
	SeverityInfo       Severity = "info"
)

// Event is the normalized, immutable representation of a failure at the
// moment it crossed an operation boundary. View code renders events only and
// never inspects raw errors.
type Event struct {
	ID        string                 `json:"id"`
	Severity  Severity               `json:"severity"`
	Kind      Kind                   `json:"kind"`
	Message   string                 `json:"message"`
	Code      Code                   `json:"code"`
	Status    int                    `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Error returns the user-facing message, implementing the error interface so
// classified events can propagate through error returns.
func (e Event) Error() string { return e.Message }

// Classify normalizes a raw error into an Event. The user-facing message is
// resolved from the code table; the error's own message wins when its code
// has no mapping. Context entries are merged over any context already
// attached to the error.
func Classify(err error, context map[string]interface{}) Event {
	if ev, ok := err.(Event); ok {
		// Already classified; keep the original identity and merge context.
		if len(context) > 0 {
			merged := make(map[string]interface{}, len(ev.Context)+len(context))
			for k, v := range ev.Context {
				merged[k] = v
			}
			for k, v := range context {
				merged[k] = v
			}
			ev.Context = merged
		}
		return ev
	}

	kind := KindOf(err)
	code := CodeOf(err)
	status := StatusOf(err)

	// The message table applies only to errors that actually carried a
	// code; unclassified errors keep their own message.
	msg := err.Error()
	var classified *Error
	if errors.As(err, &classified) {
		if m, ok := Message(code); ok {
			msg = m
		} else if classified.Message() != "" {
			msg = classified.Message()
		}
	}

	ctx := make(map[string]interface{})
	for k, v := range ContextOf(err) {
		ctx[k] = v
	}
	for k, v := range context {
		ctx[k] = v
	}
	if len(ctx) == 0 {
		ctx = nil
	}

	return Event{
		ID:        uuid.NewString(),
		Severity:  severityFor(kind, status),
		Kind:      kind,
		Message:   msg,
		Code:      code,
		Status:    status,
		Timestamp: time.Now(),
		Context:   ctx,
	}
}

// severityFor derives the display severity. Status takes precedence over
// kind: a 500 validation failure is still rendered as an error.
func severityFor(kind Kind, status int) Severity {
	switch {
	case status >= 500:
		return SeverityError
	case status >= 400:
		return SeverityWarning
	case kind == KindValidation:
		return SeverityValidation
	case kind == KindNetwork:
		return SeverityNetwork
	default:
		return SeverityInfo
	}
}
