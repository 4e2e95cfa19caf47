package models

import (
	"errors"
	"strings"
)

// Sentinel errors for the transport layer to map to HTTP status.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateProject   = errors.New("duplicate project name for owner")
	ErrForeignKey         = errors.New("referenced record does not exist")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

// FieldError is a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rule a record violated, in rule order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Add records a violation for field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// First returns the message of the first violation.
func (e *ValidationError) First() string {
	if e == nil || len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

// Has reports whether field was violated.
func (e *ValidationError) Has(field string) bool {
	return e.Message(field) != ""
}

// Message returns the violation message for field, or "".
func (e *ValidationError) Message(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Map returns violations keyed by field.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// orNil keeps a nil *ValidationError from turning into a non-nil error.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
