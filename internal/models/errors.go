package models

import "fmt"

// ErrorType represents different categories of fatal errors
type ErrorType int

const (
	ErrMetadata ErrorType = iota
	ErrOutputWrite
	ErrRender
	ErrVerify
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrMetadata:
		return "Metadata"
	case ErrOutputWrite:
		return "OutputWrite"
	case ErrRender:
		return "Render"
	case ErrVerify:
		return "Verify"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// ViewError represents a fatal error during site generation. Non-fatal
// conditions (a group member with no records, a group that resolves empty)
// are logged and skipped, never wrapped in a ViewError.
type ViewError struct {
	Type    ErrorType
	Subject string
	Err     error
}

// Error implements the error interface
func (e *ViewError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Subject, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *ViewError) Unwrap() error {
	return e.Err
}
