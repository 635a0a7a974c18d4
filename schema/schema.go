// Package schema provides declarative structural validation over plain
// record inputs. A Schema declares typed fields with ordered rules and
// cross-field refinements; validation produces an explicit result rather
// than a thrown error, with a field-to-message map for form rendering.
package schema

import (
	"strings"

	"github.com/mrobles-dev/cinevault/apperr"
)

// Schema validates a record against a set of declared fields and
// refinements.
type Schema struct {
	name        string
	fields      []*Field
	refinements []refinement
}

// refinement is a cross-field check, attached to one field for reporting.
type refinement struct {
	check   func(map[string]interface{}) bool
	field   string
	message string
}

// New creates a schema with the given fields.
func New(name string, fields ...*Field) *Schema {
	return &Schema{name: name, fields: fields}
}

// Name returns the schema's name.
func (s *Schema) Name() string { return s.name }

// Refine adds a cross-field check that runs only after every field rule has
// passed. Its violation is attached to the named field.
func (s *Schema) Refine(check func(map[string]interface{}) bool, field, message string) *Schema {
	s.refinements = append(s.refinements, refinement{check: check, field: field, message: message})
	return s
}

// Pick returns a sub-schema containing only the named fields. Refinements
// are dropped: they may reference fields outside the selection. Used for
// validating a single field in isolation.
func (s *Schema) Pick(names ...string) *Schema {
	sub := &Schema{name: s.name}
	for _, f := range s.fields {
		for _, n := range names {
			if f.name == n {
				sub.fields = append(sub.fields, f)
				break
			}
		}
	}
	return sub
}

// Violation is one failed check, in declaration order.
type Violation struct {
	Field   string
	Message string
}

// Result is the outcome of a validation pass. On success Data holds the
// coerced record including applied defaults; on failure Errors maps each
// invalid field path to a single message.
type Result struct {
	OK         bool
	Data       map[string]interface{}
	Errors     map[string]string
	Violations []Violation
}

// Err converts a failed result into a classified validation error whose
// message is the first violation. Returns nil when the result is OK.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	msg := "validation failed"
	if len(r.Violations) > 0 {
		msg = r.Violations[0].Message
	}
	fields := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		fields = append(fields, v.Field)
	}
	return apperr.Validation(msg).
		WithCode(apperr.CodeValidationFailed).
		With("fields", strings.Join(fields, ","))
}

// Validate checks data against the schema. Fields are validated in
// declaration order and each invalid field reports its first violated rule;
// refinements run only once all field rules pass.
func (s *Schema) Validate(data map[string]interface{}) Result {
	res := Result{
		Data:   make(map[string]interface{}, len(s.fields)),
		Errors: make(map[string]string),
	}

	for _, f := range s.fields {
		value, present := data[f.name]
		if !present || value == nil {
			if f.hasDefault {
				res.Data[f.name] = f.def
				continue
			}
			if f.optional {
				continue
			}
			res.fail(f.name, f.missingMessage())
			continue
		}

		coerced, msg := f.validate(value)
		if msg != "" {
			res.fail(f.name, msg)
			continue
		}
		res.Data[f.name] = coerced
	}

	if len(res.Violations) == 0 {
		for _, ref := range s.refinements {
			if !ref.check(res.Data) {
				res.fail(ref.field, ref.message)
			}
		}
	}

	if len(res.Violations) > 0 {
		res.OK = false
		res.Data = nil
		return res
	}
	res.OK = true
	res.Errors = nil
	return res
}

// ValidateField validates a single named field in isolation, for live
// per-keystroke feedback. The message is empty when the value is valid or
// the field is unknown to the schema.
func (s *Schema) ValidateField(name string, value interface{}) (message string, ok bool) {
	sub := s.Pick(name)
	if len(sub.fields) == 0 {
		return "", true
	}
	res := sub.Validate(map[string]interface{}{name: value})
	if res.OK {
		return "", true
	}
	return res.Errors[name], false
}

func (r *Result) fail(field, message string) {
	r.Violations = append(r.Violations, Violation{Field: field, Message: message})
	if _, taken := r.Errors[field]; !taken {
		r.Errors[field] = message
	}
}
