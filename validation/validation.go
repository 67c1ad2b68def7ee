// Package validation collects per-field violations the way form handlers
// consume them: a map of field name to message code, rendered next to the
// offending input.
package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags the field when value is blank.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Confirmed flags the field when the two entries differ.
// Used for the double password entry on user forms.
func Confirmed(field, value, confirm string, v Violations) {
	if value != confirm {
		v[field] = "confirmation_mismatch"
	}
}

// MaxLen flags the field when value exceeds max runes.
func MaxLen(field, value string, max int, v Violations) {
	if len([]rune(value)) > max {
		v[field] = "too_long"
	}
}
