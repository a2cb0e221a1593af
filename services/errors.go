package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError is returned when a request is malformed or violates a field rule
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ConflictError is returned when an operation is refused because of scheduling
// conflicts, a daily limit or a concurrent modification
type ConflictError struct {
	Message   string
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ScopeError is returned when a department/semester filter names an unknown department or semester
type ScopeError struct {
	Message string
}

func (e *ScopeError) Error() string {
	return e.Message
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{
		Message: msg,
		Fields:  map[string]string{field: msg},
	}
}
