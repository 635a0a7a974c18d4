// Package errhub collects the classified error events of an application
// instance: an ordered, deduplicated list for the notification surface, and
// an in-flight operation counter that derives a single loading flag across
// concurrent requests.
package errhub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrobles-dev/cinevault/apperr"
)

// Hub is a thread-safe collection of active error events. The zero value is
// not usable; construct with New.
type Hub struct {
	mu     sync.RWMutex
	events []apperr.Event

	inflightMu sync.Mutex
	inflight   int

	logger *apperr.Logger
}

// Option configures Hub behavior during creation.
type Option func(*Hub)

// WithLogger sets the logger used to record captured errors.
func WithLogger(logger *apperr.Logger) Option {
	return func(h *Hub) { h.logger = logger }
}

// New creates a Hub. Without options it logs through the default text
// handler on stderr.
func New(options ...Option) *Hub {
	h := &Hub{}
	for _, opt := range options {
		opt(h)
	}
	if h.logger == nil {
		h.logger = apperr.NewLogger(nil)
	}
	return h
}

// Add classifies and logs err, then appends the event unless an existing
// entry carries the same (message, code) pair. The classified event is
// returned either way, so callers can rethrow it.
func (h *Hub) Add(err error, context map[string]interface{}) apperr.Event {
	ev := h.logger.Capture(err, context)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.events {
		if existing.Message == ev.Message && existing.Code == ev.Code {
			return ev
		}
	}
	h.events = append(h.events, ev)
	return ev
}

// Remove deletes the event with the given id, if present.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, ev := range h.events {
		if ev.ID == id {
			h.events = append(h.events[:i], h.events[i+1:]...)
			return
		}
	}
}

// Clear removes all events.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = h.events[:0]
}

// ClearBySeverity removes all events of the given severity.
func (h *Hub) ClearBySeverity(sev apperr.Severity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.events[:0]
	for _, ev := range h.events {
		if ev.Severity != sev {
			kept = append(kept, ev)
		}
	}
	h.events = kept
}

// BySeverity returns the events of the given severity, in insertion order.
func (h *Hub) BySeverity(sev apperr.Severity) []apperr.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []apperr.Event
	for _, ev := range h.events {
		if ev.Severity == sev {
			out = append(out, ev)
		}
	}
	return out
}

// Has reports whether any event is present. With severity arguments it
// reports whether any event of one of those severities is present.
func (h *Hub) Has(sev ...apperr.Severity) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(sev) == 0 {
		return len(h.events) > 0
	}
	for _, ev := range h.events {
		for _, s := range sev {
			if ev.Severity == s {
				return true
			}
		}
	}
	return false
}

// Events returns a copy of the current event list in insertion order.
func (h *Hub) Events() []apperr.Event {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.events) == 0 {
		return nil
	}
	out := make([]apperr.Event, len(h.events))
	copy(out, h.events)
	return out
}

// PruneOlderThan removes events older than the given age, keeping
// error-severity events, which require manual dismissal. Returns the number
// removed. The notification surface calls this on its auto-dismiss tick.
func (h *Hub) PruneOlderThan(age time.Duration) int {
	cutoff := time.Now().Add(-age)
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.events[:0]
	removed := 0
	for _, ev := range h.events {
		if ev.Severity != apperr.SeverityError && ev.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	h.events = kept
	return removed
}

// Loading reports whether any wrapped operation is still in flight. It turns
// false only when the shared counter returns to zero, so overlapping
// requests do not flicker the flag.
func (h *Hub) Loading() bool {
	h.inflightMu.Lock()
	defer h.inflightMu.Unlock()
	return h.inflight > 0
}

// begin and end bracket one in-flight operation.
func (h *Hub) begin() {
	h.inflightMu.Lock()
	h.inflight++
	h.inflightMu.Unlock()
}

func (h *Hub) end() {
	h.inflightMu.Lock()
	h.inflight--
	h.inflightMu.Unlock()
}

// Do runs op while tracking it in the hub's in-flight counter. On failure
// the error is captured through Add and the classified event is returned in
// its place, so callers only ever observe normalized errors. The counter is
// decremented on every exit path.
func Do[T any](h *Hub, ctx context.Context, op func(context.Context) (T, error), ectx map[string]interface{}) (T, error) {
	requestID := uuid.NewString()
	h.begin()
	defer h.end()

	result, err := op(ctx)
	if err != nil {
		merged := make(map[string]interface{}, len(ectx)+1)
		for k, v := range ectx {
			merged[k] = v
		}
		merged["request_id"] = requestID
		ev := h.Add(err, merged)
		var zero T
		return zero, ev
	}
	return result, nil
}

// RetryOptions configures DoRetry.
type RetryOptions struct {
	MaxAttempts int
	Delay       time.Duration
	Context     map[string]interface{}
}

// DoRetry composes the retry policy over Do: the handled operation is
// retried, so every failed attempt is still logged and deduplicated. Only
// retryable failures are attempted again.
func DoRetry[T any](h *Hub, ctx context.Context, op func(context.Context) (T, error), opts RetryOptions) (T, error) {
	options := []apperr.RetryOption{apperr.WithContext(ctx)}
	if opts.MaxAttempts > 0 {
		options = append(options, apperr.WithMaxAttempts(opts.MaxAttempts))
	}
	if opts.Delay > 0 {
		options = append(options, apperr.WithDelay(opts.Delay))
	}
	r := apperr.NewRetry(options...)
	return apperr.RetryValue(r, func() (T, error) {
		return Do(h, ctx, op, opts.Context)
	})
}
