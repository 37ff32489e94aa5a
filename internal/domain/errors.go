package domain

import (
	"sort"
	"strings"
)

// FieldErrors maps a field name to one or more validation messages, matching
// the error channel every mutation endpoint speaks.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field string, message string) {
	e[field] = append(e[field], message)
}

// Join flattens every message into a single comma-separated string, in field
// order, for one-notification presentation.
func (e FieldErrors) Join() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var messages []string
	for _, field := range fields {
		messages = append(messages, e[field]...)
	}
	return strings.Join(messages, ", ")
}

func (e FieldErrors) Error() string {
	return e.Join()
}

// ValidationError is the non-2xx mutation response body.
type ValidationError struct {
	Errors FieldErrors `json:"errors"`
}

// FlashError is the single-string error channel used for not-found and other
// non-field failures.
type FlashError struct {
	Error string `json:"error"`
}

// FlashSuccess is the one-shot success message returned by mutations, plus
// the affected record's id when one was created.
type FlashSuccess struct {
	Success string `json:"success"`
	ID      string `json:"id,omitempty"`
}

// MutationOutcome is the decoded form of either flash channel. Servers send
// one or the other; clients decode into this and inspect which side is set.
type MutationOutcome struct {
	Success string      `json:"success"`
	Err     string      `json:"error"`
	Errors  FieldErrors `json:"errors"`
}

// Message returns the outcome's single user-facing string: the flash message
// on success, otherwise every error message joined with commas.
func (o MutationOutcome) Message() string {
	if o.Success != "" {
		return o.Success
	}
	if o.Err != "" {
		return o.Err
	}
	return o.Errors.Join()
}
