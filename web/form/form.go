// Package form validates submitted HTML forms against a declarative schema.
//
// A schema lists every accepted field with its kind and a validator tag
// string. Validate is a pure function of the schema and the submitted
// values: it coerces each field to its kind and returns either the typed
// values or, per field, the rules that failed. Message text is not produced
// here; callers translate FieldError.MessageID.
package form

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Kind int

const (
	String Kind = iota
	// Password is a string kept exactly as submitted.
	Password
	Bool
	DateTime
)

// Field declares one form input. Rules uses validator tag syntax, e.g. "required,url".
type Field struct {
	Name  string
	Kind  Kind
	Rules string
}

type Schema []Field

// FieldError is one failed rule of a field.
type FieldError struct {
	Tag   string
	Param string
}

// MessageID is the translation key of the error, e.g. "form.errors.required".
func (e FieldError) MessageID() string {
	return "form.errors." + e.Tag
}

type FieldErrors map[string][]FieldError

// dateTimeLayouts are tried in order; the first two are what browsers send
// for <input type="datetime-local">.
var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var validate = validator.New()

type Result struct {
	raw    map[string]string
	values map[string]any
	Errors FieldErrors
}

// Empty returns a valid result with no values, for rendering a blank form.
func Empty() *Result {
	return &Result{raw: map[string]string{}, values: map[string]any{}, Errors: FieldErrors{}}
}

// Validate checks values against schema. Fields not in the schema are ignored.
func Validate(schema Schema, values url.Values) *Result {
	r := &Result{
		raw:    make(map[string]string, len(schema)),
		values: make(map[string]any, len(schema)),
		Errors: FieldErrors{},
	}
	for _, f := range schema {
		v := values.Get(f.Name)
		if f.Kind != Password {
			v = strings.TrimSpace(v)
			r.raw[f.Name] = v
		}

		if f.Rules != "" {
			if err := validate.Var(v, f.Rules); err != nil {
				if verrs, ok := err.(validator.ValidationErrors); ok {
					for _, fe := range verrs {
						r.AddError(f.Name, fe.Tag(), fe.Param())
					}
				} else {
					r.AddError(f.Name, "invalid", "")
				}
				continue
			}
		}

		switch f.Kind {
		case Bool:
			r.values[f.Name] = parseBool(v)
		case DateTime:
			if v == "" {
				r.values[f.Name] = (*time.Time)(nil)
				continue
			}
			t, ok := parseDateTime(v)
			if !ok {
				r.AddError(f.Name, "datetime", "")
				continue
			}
			r.values[f.Name] = &t
		default:
			r.values[f.Name] = v
		}
	}
	return r
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "", "false", "0", "off", "n", "no":
		return false
	}
	return true
}

func parseDateTime(v string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Valid reports whether every field passed.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// AddError records a failed rule for a field, e.g. a cross-field check done by the caller.
func (r *Result) AddError(field, tag, param string) {
	r.Errors[field] = append(r.Errors[field], FieldError{Tag: tag, Param: param})
}

// Value returns the submitted (trimmed) text of a field, for redisplay.
func (r *Result) Value(name string) string {
	return r.raw[name]
}

func (r *Result) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

func (r *Result) Bool(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

// Time returns the parsed datetime of a field, or nil when it was left empty.
func (r *Result) Time(name string) *time.Time {
	t, _ := r.values[name].(*time.Time)
	return t
}
