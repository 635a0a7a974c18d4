// Package form layers interaction state over schema validation: every field
// is validated on change, but its error only becomes visible once the user
// has touched the field. Whole-form validation always surfaces everything.
package form

import (
	"sync"

	"github.com/mrobles-dev/cinevault/errhub"
	"github.com/mrobles-dev/cinevault/schema"
)

// Validator tracks the visible validation errors and touched fields of one
// form bound to a schema. Methods are safe for concurrent use.
type Validator struct {
	schema *schema.Schema
	hub    *errhub.Hub

	validateOnChange bool
	validateOnBlur   bool
	showWhenTouched  bool

	mu      sync.Mutex
	errors  map[string]string
	touched map[string]bool
}

// Option configures a Validator.
type Option func(*Validator)

// ValidateOnChange toggles per-keystroke validation (default on).
func ValidateOnChange(on bool) Option {
	return func(v *Validator) { v.validateOnChange = on }
}

// ValidateOnBlur toggles validation when a field loses focus (default on).
func ValidateOnBlur(on bool) Option {
	return func(v *Validator) { v.validateOnBlur = on }
}

// ShowWhenTouched gates error visibility on the touched flag (default on).
// When disabled, errors surface immediately on change.
func ShowWhenTouched(on bool) Option {
	return func(v *Validator) { v.showWhenTouched = on }
}

// New creates a Validator for the given schema. Form-level failures are
// routed into hub; a nil hub skips that routing.
func New(s *schema.Schema, hub *errhub.Hub, options ...Option) *Validator {
	v := &Validator{
		schema:           s,
		hub:              hub,
		validateOnChange: true,
		validateOnBlur:   true,
		showWhenTouched:  true,
		errors:           make(map[string]string),
		touched:          make(map[string]bool),
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// FieldChange validates a field on edit. The error is recorded as visible
// only if the field is already touched (unless gating is disabled); a valid
// value always clears any visible error.
func (v *Validator) FieldChange(name string, value interface{}) {
	if !v.validateOnChange {
		return
	}
	msg, ok := v.schema.ValidateField(name, value)

	v.mu.Lock()
	defer v.mu.Unlock()
	if ok {
		delete(v.errors, name)
		return
	}
	if !v.showWhenTouched || v.touched[name] {
		v.errors[name] = msg
	}
}

// FieldBlur marks the field as touched, then validates and always surfaces
// the outcome.
func (v *Validator) FieldBlur(name string, value interface{}) {
	v.mu.Lock()
	v.touched[name] = true
	v.mu.Unlock()

	if !v.validateOnBlur {
		return
	}
	msg, ok := v.schema.ValidateField(name, value)

	v.mu.Lock()
	defer v.mu.Unlock()
	if ok {
		delete(v.errors, name)
		return
	}
	v.errors[name] = msg
}

// ValidateForm validates the whole record, including cross-field
// refinements, and surfaces every field error. Failures are also routed to
// the error hub tagged as a form-level validation failure.
func (v *Validator) ValidateForm(data map[string]interface{}) schema.Result {
	res := v.schema.Validate(data)

	v.mu.Lock()
	if res.OK {
		v.errors = make(map[string]string)
	} else {
		v.errors = make(map[string]string, len(res.Errors))
		for field, msg := range res.Errors {
			v.errors[field] = msg
		}
	}
	v.mu.Unlock()

	if !res.OK && v.hub != nil {
		fields := make([]string, 0, len(res.Violations))
		for _, viol := range res.Violations {
			fields = append(fields, viol.Field)
		}
		v.hub.Add(res.Err(), map[string]interface{}{
			"type":   "validation",
			"form":   true,
			"fields": fields,
		})
	}
	return res
}

// Errors returns a copy of the currently visible field errors.
func (v *Validator) Errors() map[string]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]string, len(v.errors))
	for k, m := range v.errors {
		out[k] = m
	}
	return out
}

// Error returns the visible message for one field, empty if none.
func (v *Validator) Error(name string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errors[name]
}

// Valid reports whether no visible validation errors remain.
func (v *Validator) Valid() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.errors) == 0
}

// Touched reports whether the user has interacted with the field.
func (v *Validator) Touched(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.touched[name]
}

// Clear resets errors and touched state together. They are not
// independently resettable: clearing one without the other would leave
// stale visibility decisions.
func (v *Validator) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = make(map[string]string)
	v.touched = make(map[string]bool)
}

// ClearField removes the visible error for one field.
func (v *Validator) ClearField(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.errors, name)
}
