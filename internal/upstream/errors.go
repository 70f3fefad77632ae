package upstream

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnauthorized means the upstream API rejected the session token. The
// session has already been cleared when this is returned.
var ErrUnauthorized = errors.New("upstream: unauthorized")

// FieldError is one validation message for one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a 422 answer: a summary plus per-field messages.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "upstream validation failed: " + e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "upstream validation failed: " + strings.Join(parts, "; ")
}

// StatusError is any other non-2xx answer.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned %d: %s", e.Endpoint, e.Status, e.Body)
}

// validationBody is the Laravel-style 422 payload:
// {"message": "...", "errors": {"field": ["msg", ...]}}
type validationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (b validationBody) toError() *ValidationError {
	ve := &ValidationError{Message: b.Message}
	fields := make([]string, 0, len(b.Errors))
	for f := range b.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		for _, msg := range b.Errors[f] {
			ve.Fields = append(ve.Fields, FieldError{Field: f, Message: msg})
		}
	}
	if ve.Message == "" {
		ve.Message = "The given data was invalid."
	}
	return ve
}
