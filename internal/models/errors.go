package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrMissingField ErrorType = iota
	ErrLicense
	ErrBuildFailed
	ErrArtifactMissing
	ErrTargetUnavailable
	ErrFileOp
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrMissingField:
		return "MissingField"
	case ErrLicense:
		return "License"
	case ErrBuildFailed:
		return "BuildFailed"
	case ErrArtifactMissing:
		return "ArtifactMissing"
	case ErrTargetUnavailable:
		return "TargetUnavailable"
	case ErrFileOp:
		return "FileOp"
	default:
		return "Unknown"
	}
}

// AurGenError represents an error during package generation
type AurGenError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *AurGenError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *AurGenError) Unwrap() error {
	return e.Err
}
