// Package validation holds the declarative field rules every write payload
// runs through before a service touches the store. Rules are pure functions;
// Collect composes them into a single field->messages map.
package validation

import (
	"fmt"
	"strings"
)

type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Empty() bool { return len(e) == 0 }

// Rule appends zero or more messages for one field.
type Rule func(Errors)

func Collect(rules ...Rule) Errors {
	errs := Errors{}
	for _, rule := range rules {
		rule(errs)
	}
	return errs
}

func Required(field, value string) Rule {
	return func(errs Errors) {
		if strings.TrimSpace(value) == "" {
			errs.Add(field, fmt.Sprintf("%s is required", field))
		}
	}
}

func MaxLen(field, value string, max int) Rule {
	return func(errs Errors) {
		if len([]rune(value)) > max {
			errs.Add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
		}
	}
}

func ExactLen(field, value string, n int) Rule {
	return func(errs Errors) {
		if value != "" && len([]rune(value)) != n {
			errs.Add(field, fmt.Sprintf("%s must be exactly %d characters", field, n))
		}
	}
}

// ExactDigits enforces the legacy fixed-width numeric code format
// ("exactly 3 digits" style keys).
func ExactDigits(field, value string, n int) Rule {
	return func(errs Errors) {
		if value == "" {
			return
		}
		if len(value) != n || !allDigits(value) {
			errs.Add(field, fmt.Sprintf("%s must be exactly %d digits", field, n))
		}
	}
}

func Digits(field, value string) Rule {
	return func(errs Errors) {
		if value != "" && !allDigits(value) {
			errs.Add(field, fmt.Sprintf("%s must contain only digits", field))
		}
	}
}

func OneOf(field, value string, allowed ...string) Rule {
	return func(errs Errors) {
		if value == "" {
			return
		}
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs.Add(field, fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")))
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
