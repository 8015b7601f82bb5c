// Package formutil coerces submitted form values into API payload fields:
// blanks become nil, numbers are parsed, multi-selects become slices.
package formutil

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FieldError reports a value that could not be coerced.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func invalid(field, label, kind string) error {
	return &FieldError{Field: field, Message: fmt.Sprintf("%s must be %s", label, kind)}
}

// String returns the trimmed value of key.
func String(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// OptionalString returns nil for a blank value, otherwise the trimmed value.
func OptionalString(form url.Values, key string) *string {
	v := String(form, key)
	if v == "" {
		return nil
	}
	return &v
}

// Float parses a number; a blank value is 0.
func Float(form url.Values, key, label string) (float64, error) {
	v := String(form, key)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, invalid(key, label, "a number")
	}
	return f, nil
}

// OptionalFloat parses a number; a blank value is nil.
func OptionalFloat(form url.Values, key, label string) (*float64, error) {
	if String(form, key) == "" {
		return nil, nil
	}
	f, err := Float(form, key, label)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Int parses a whole number; a blank value is an error.
func Int(form url.Values, key, label string) (int, error) {
	n, err := strconv.Atoi(String(form, key))
	if err != nil {
		return 0, invalid(key, label, "selected")
	}
	return n, nil
}

// OptionalInt parses a whole number; a blank value is nil.
func OptionalInt(form url.Values, key, label string) (*int, error) {
	if String(form, key) == "" {
		return nil, nil
	}
	n, err := Int(form, key, label)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// IntList parses every submitted value of key (checkbox groups, multi-selects).
// POST: the result is non-nil so it encodes as [] rather than null
func IntList(form url.Values, key, label string) ([]int, error) {
	out := []int{}
	for _, raw := range form[key] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, invalid(key, label, "a list of ids")
		}
		out = append(out, n)
	}
	return out, nil
}

// StringList returns every non-blank submitted value of key.
// POST: the result is non-nil
func StringList(form url.Values, key string) []string {
	out := []string{}
	for _, raw := range form[key] {
		if raw = strings.TrimSpace(raw); raw != "" {
			out = append(out, raw)
		}
	}
	return out
}

// Bool reads a checkbox.
func Bool(form url.Values, key string) bool {
	switch strings.ToLower(String(form, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
