package errors

import (
	"fmt"
)

// SeqError is the unified sequence error type.
type SeqError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *SeqError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *SeqError) Unwrap() error { return e.Cause }

// Is reports whether target is a *SeqError with the same code, so that
// errors.Is(err, ErrEmptySequence) matches any empty-sequence failure.
func (e *SeqError) Is(target error) bool {
	t, ok := target.(*SeqError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *SeqError) WithCause(cause error) *SeqError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *SeqError) WithDetails(details map[string]any) *SeqError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *SeqError) WithDetail(key string, value any) *SeqError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new SeqError.
func New(code ErrorCode, message string) *SeqError {
	return &SeqError{
		Code:    code,
		Message: message,
	}
}

// Sentinels for errors.Is comparisons. They must not be mutated.
var (
	ErrEmptySequence        = New(ErrCodeEmptySequence, "sequence contains no elements")
	ErrInvalidRange         = New(ErrCodeInvalidRange, "invalid range")
	ErrIndexOutOfRange      = New(ErrCodeIndexOutOfRange, "index out of range")
	ErrUnsupportedOperation = New(ErrCodeUnsupportedOperation, "unsupported operation")
	ErrInvalidState         = New(ErrCodeInvalidState, "invalid iterator state")
)

// --- Common Error Constructors ---

// EmptySequence creates a new SeqError for a terminal operation on an empty sequence.
func EmptySequence(operation string) *SeqError {
	return &SeqError{
		Code:    ErrCodeEmptySequence,
		Message: fmt.Sprintf("%s: sequence contains no elements", operation),
		Details: map[string]any{"operation": operation},
	}
}

// InvalidRange creates a new SeqError for bounds that cannot be resolved.
func InvalidRange(reason string) *SeqError {
	return &SeqError{
		Code:    ErrCodeInvalidRange,
		Message: fmt.Sprintf("invalid range: %s", reason),
	}
}

// IndexOutOfRange creates a new SeqError for an index outside [0, length).
func IndexOutOfRange(index, length int) *SeqError {
	return &SeqError{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, length),
		Details: map[string]any{"index": index, "length": length},
	}
}

// UnsupportedOperation creates a new SeqError for a mutation on a fixed view.
func UnsupportedOperation(operation string) *SeqError {
	return &SeqError{
		Code:    ErrCodeUnsupportedOperation,
		Message: fmt.Sprintf("%s is not supported on a read-only view", operation),
		Details: map[string]any{"operation": operation},
	}
}

// InvalidState creates a new SeqError for misuse of the iteration contract.
func InvalidState(reason string) *SeqError {
	return &SeqError{
		Code:    ErrCodeInvalidState,
		Message: reason,
	}
}

// InvalidConfig creates a new SeqError for configuration that failed validation.
func InvalidConfig(message string) *SeqError {
	return &SeqError{
		Code:    ErrCodeInvalidConfig,
		Message: message,
	}
}
