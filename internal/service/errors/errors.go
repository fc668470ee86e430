// Package errors provides custom errors for types implementing service interfaces.
package errors

import (
	"fmt"
	"strings"
)

type (
	// FieldError describes one violated request field.
	FieldError struct {
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}
	ValidationError struct {
		Fields []FieldError
	}
	NotFoundError struct {
		Entity string
		ID     string
		Err    error
	}
	ConfigurationError struct {
		Msg string
	}
	UpstreamError struct {
		Status int
		Msg    string
		Err    error
	}
	ConflictError struct {
		Msg string
		Err error
	}
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceFoundNilProvider struct {
		Msg string
	}
)

// Add appends a field violation.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no violation was collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid request data: " + strings.Join(parts, "; ")
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("screenshot API error: %d %s", e.Status, e.Msg)
	}
	return fmt.Sprintf("screenshot API error: %s", e.Msg)
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceFoundNilProvider) Error() string {
	return e.Msg
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
