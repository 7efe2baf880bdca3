// Package errors provides severity-aware error types.
package errors

import "fmt"

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// EconError is a structured error with context.
type EconError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Field       string   `json:"field,omitempty"`
	Recoverable bool     `json:"recoverable"`
}

func (e *EconError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s (field: %s)", e.Severity, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
}

// Error codes
const (
	ErrCodeNonPositiveInput  = "NON_POSITIVE_INPUT"
	ErrCodeInvalidElasticity = "INVALID_ELASTICITY"
	ErrCodeSolverFailed      = "SOLVER_NOT_CONVERGED"
)

// NewNonPositiveInputError creates an error for inputs where the underlying
// formula is mathematically undefined at or below zero.
func NewNonPositiveInputError(field string) *EconError {
	return &EconError{
		Code:        ErrCodeNonPositiveInput,
		Message:     fmt.Sprintf("Input must be positive: %s", field),
		Severity:    SeverityError,
		Field:       field,
		Recoverable: true,
	}
}

// NewElasticityError creates an error for non-negative elasticity in the
// markup pricing formula.
func NewElasticityError() *EconError {
	return &EconError{
		Code:        ErrCodeInvalidElasticity,
		Message:     "Elasticity must be negative for downward-sloping demand",
		Severity:    SeverityError,
		Field:       "elasticity",
		Recoverable: true,
	}
}

// NewSolverError creates an error for optimizer non-convergence.
func NewSolverError(detail string) *EconError {
	return &EconError{
		Code:        ErrCodeSolverFailed,
		Message:     fmt.Sprintf("Optimization did not converge: %s", detail),
		Severity:    SeverityError,
		Recoverable: false,
	}
}
