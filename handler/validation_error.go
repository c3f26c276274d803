package handler

import (
	"fmt"
	"strings"
)

// Validation failure kinds with default message templates.
const (
	KindRequired  = "required"
	KindMin       = "min"
	KindMax       = "max"
	KindEnum      = "enum"
	KindDuplicate = "duplicate"
)

var kindMessages = map[string]string{
	KindRequired:  "%s is required",
	KindMin:       "%s below minimum",
	KindMax:       "%s above maximum",
	KindEnum:      "%s not an allowed value",
	KindDuplicate: "%s already exists",
}

// FieldError is one failed field. Path may be empty for form-level failures.
type FieldError struct {
	Path    string
	Kind    string
	Message string
}

// ValidationError collects field failures in the order they were added.
type ValidationError struct {
	fields []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add records a failure with an explicit message.
func (e *ValidationError) Add(path, message string) *ValidationError {
	e.fields = append(e.fields, FieldError{Path: path, Message: message})
	return e
}

// AddKind records a failure whose message comes from the kind template.
func (e *ValidationError) AddKind(path, kind string) *ValidationError {
	e.fields = append(e.fields, FieldError{Path: path, Kind: kind})
	return e
}

func (e *ValidationError) Fields() []FieldError {
	return append([]FieldError(nil), e.fields...)
}

// Get returns the first message recorded for path.
func (e *ValidationError) Get(path string) string {
	for _, f := range e.fields {
		if f.Path == path {
			return f.message()
		}
	}
	return ""
}

func (e *ValidationError) Has(path string) bool {
	for _, f := range e.fields {
		if f.Path == path {
			return true
		}
	}
	return false
}

func (e *ValidationError) IsEmpty() bool {
	return e == nil || len(e.fields) == 0
}

func (e *ValidationError) Error() string {
	if e.IsEmpty() {
		return "Validation failed"
	}
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		if f.Path == "" {
			parts = append(parts, f.message())
			continue
		}
		parts = append(parts, f.Path+": "+f.message())
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (f FieldError) message() string {
	if f.Message != "" {
		return f.Message
	}
	if tmpl, ok := kindMessages[f.Kind]; ok {
		return fmt.Sprintf(tmpl, f.Path)
	}
	return "Invalid " + f.Path
}
