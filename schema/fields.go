package schema

import (
	"fmt"
	"regexp"
	"unicode"
)

type fieldType int

const (
	typeString fieldType = iota
	typeInt
	typeFloat
	typeBool
	typeStringList
)

// rule is one ordered check over a coerced value.
type rule struct {
	check   func(interface{}) bool
	message string
}

// Field declares the type and constraints of one record key. Rules run in
// the order they were chained and the first violation wins.
type Field struct {
	name       string
	typ        fieldType
	optional   bool
	hasDefault bool
	def        interface{}
	required   string // required-violation message, empty for the generic one
	rules      []rule
}

// String declares a string field.
func String(name string) *Field { return &Field{name: name, typ: typeString} }

// Int declares an integer field. Float inputs are accepted when integral.
func Int(name string) *Field { return &Field{name: name, typ: typeInt} }

// Float declares a numeric field.
func Float(name string) *Field { return &Field{name: name, typ: typeFloat} }

// Bool declares a boolean field.
func Bool(name string) *Field { return &Field{name: name, typ: typeBool} }

// StringList declares a list-of-strings field.
func StringList(name string) *Field { return &Field{name: name, typ: typeStringList} }

// Name returns the field's record key.
func (f *Field) Name() string { return f.name }

// Optional marks the field as omittable.
func (f *Field) Optional() *Field {
	f.optional = true
	return f
}

// Default supplies a value for absent inputs, implying Optional.
func (f *Field) Default(v interface{}) *Field {
	f.hasDefault = true
	f.optional = true
	f.def = v
	return f
}

// Required rejects absent and, for strings, empty values with msg.
func (f *Field) Required(msg string) *Field {
	f.required = msg
	if f.typ == typeString {
		f.rules = append(f.rules, rule{
			check:   func(v interface{}) bool { return len(v.(string)) > 0 },
			message: msg,
		})
	}
	return f
}

// Min constrains string length, numeric value, or list length.
func (f *Field) Min(n int, msg string) *Field {
	f.rules = append(f.rules, rule{check: f.atLeast(n), message: msg})
	return f
}

// Max constrains string length, numeric value, or list length.
func (f *Field) Max(n int, msg string) *Field {
	f.rules = append(f.rules, rule{check: f.atMost(n), message: msg})
	return f
}

// Pattern requires string values to match the regular expression. The
// expression is compiled at declaration time.
func (f *Field) Pattern(expr, msg string) *Field {
	re := regexp.MustCompile(expr)
	f.rules = append(f.rules, rule{
		check:   func(v interface{}) bool { return re.MatchString(v.(string)) },
		message: msg,
	})
	return f
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email requires string values to look like an email address.
func (f *Field) Email(msg string) *Field {
	f.rules = append(f.rules, rule{
		check:   func(v interface{}) bool { return emailPattern.MatchString(v.(string)) },
		message: msg,
	})
	return f
}

// OneOf restricts string values to an enumerated set.
func (f *Field) OneOf(values []string, msg string) *Field {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	f.rules = append(f.rules, rule{
		check:   func(v interface{}) bool { return allowed[v.(string)] },
		message: msg,
	})
	return f
}

// Check adds a custom rule over the coerced value.
func (f *Field) Check(fn func(interface{}) bool, msg string) *Field {
	f.rules = append(f.rules, rule{check: fn, message: msg})
	return f
}

// Letters restricts string values to letters and spaces, for any script.
func (f *Field) Letters(msg string) *Field {
	f.rules = append(f.rules, rule{
		check: func(v interface{}) bool {
			for _, r := range v.(string) {
				if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
					return false
				}
			}
			return true
		},
		message: msg,
	})
	return f
}

func (f *Field) missingMessage() string {
	if f.required != "" {
		return f.required
	}
	return fmt.Sprintf("The field %s is required", f.name)
}

// validate coerces value to the field's type and runs the rules in order.
// Returns the coerced value, or the first violation message.
func (f *Field) validate(value interface{}) (interface{}, string) {
	coerced, ok := f.coerce(value)
	if !ok {
		return nil, f.typeMessage()
	}
	for _, r := range f.rules {
		if !r.check(coerced) {
			return nil, r.message
		}
	}
	return coerced, ""
}

func (f *Field) typeMessage() string {
	switch f.typ {
	case typeInt:
		return fmt.Sprintf("The field %s must be a whole number", f.name)
	case typeFloat:
		return fmt.Sprintf("The field %s must be a number", f.name)
	case typeBool:
		return fmt.Sprintf("The field %s must be true or false", f.name)
	case typeStringList:
		return fmt.Sprintf("The field %s must be a list of strings", f.name)
	default:
		return fmt.Sprintf("The field %s must be text", f.name)
	}
}

func (f *Field) coerce(value interface{}) (interface{}, bool) {
	switch f.typ {
	case typeString:
		s, ok := value.(string)
		return s, ok
	case typeInt:
		switch n := value.(type) {
		case int:
			return n, true
		case int32:
			return int(n), true
		case int64:
			return int(n), true
		case float64:
			if n == float64(int(n)) {
				return int(n), true
			}
			return nil, false
		default:
			return nil, false
		}
	case typeFloat:
		switch n := value.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		default:
			return nil, false
		}
	case typeBool:
		b, ok := value.(bool)
		return b, ok
	case typeStringList:
		switch list := value.(type) {
		case []string:
			return list, true
		case []interface{}:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		default:
			return nil, false
		}
	}
	return nil, false
}

func (f *Field) atLeast(n int) func(interface{}) bool {
	return func(v interface{}) bool {
		switch t := v.(type) {
		case string:
			return len([]rune(t)) >= n
		case int:
			return t >= n
		case float64:
			return t >= float64(n)
		case []string:
			return len(t) >= n
		}
		return false
	}
}

func (f *Field) atMost(n int) func(interface{}) bool {
	return func(v interface{}) bool {
		switch t := v.(type) {
		case string:
			return len([]rune(t)) <= n
		case int:
			return t <= n
		case float64:
			return t <= float64(n)
		case []string:
			return len(t) <= n
		}
		return false
	}
}
