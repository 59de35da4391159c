// Package validator accumulates field-level validation errors so a form can
// report every problem at once instead of failing on the first one.
package validator

import "strings"

// Validator collects validation failures keyed by field name. A Validator
// with no recorded errors is valid.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no errors have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key. The first error recorded for a field
// wins; later ones are ignored.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check records an error for key unless ok is true.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// NotBlank reports whether value contains at least one non-whitespace rune.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// Between reports whether n lies in the inclusive range [min, max].
func Between(n, min, max int) bool {
	return n >= min && n <= max
}
