package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified error type for speakerkit.
type Error struct {
	// Code is a machine-readable error code.
	Code Code `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with automatic retryable detection.
func New(code Code, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf returns the code of err if it is (or wraps) an *Error,
// or CodeInternal otherwise.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether err is (or wraps) an *Error with the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Code == code
}

// --- Common Error Constructors ---

// InvalidSegment creates a new Error for a segment with malformed timing.
// The index identifies the offending segment within its input sequence.
func InvalidSegment(index int, start, end float64, reason string) *Error {
	return &Error{
		Code: CodeInvalidSegment, Message: fmt.Sprintf("Invalid segment at index %d: %s", index, reason),
		Retryable: false,
		Details:   map[string]any{"index": index, "start": start, "end": end},
	}
}

// InvalidPayload creates a new Error for an unparseable transcript payload.
func InvalidPayload(reason string, cause error) *Error {
	return &Error{
		Code: CodeInvalidPayload, Message: fmt.Sprintf("Invalid transcript payload: %s", reason),
		Retryable: false, Cause: cause,
	}
}

// InvalidInput creates a new Error for invalid input.
func InvalidInput(field, reason string) *Error {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &Error{
		Code: CodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new Error for validation errors.
func Validation(message string) *Error {
	return &Error{
		Code: CodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// MissingField creates a new Error for a missing required field.
func MissingField(field string) *Error {
	return &Error{
		Code: CodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// NotFound creates a new Error for a resource that was not found.
func NotFound(resource, id string) *Error {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &Error{
		Code: CodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		Retryable: false, Details: details,
	}
}

// UnsupportedScheme creates a new Error for an unregistered location scheme.
func UnsupportedScheme(scheme string) *Error {
	return &Error{
		Code: CodeUnsupportedScheme, Message: fmt.Sprintf("No storage backend registered for scheme %q.", scheme),
		Retryable: false,
		Details:   map[string]any{"scheme": scheme},
	}
}

// FetchFailed creates a new Error for a transcript source that could not be read.
func FetchFailed(location string, cause error) *Error {
	return &Error{
		Code: CodeFetchFailed, Message: fmt.Sprintf("Failed to fetch %s.", location),
		Retryable: true,
		Details:   map[string]any{"location": location}, Cause: cause,
	}
}

// StoreFailed creates a new Error for an artifact that could not be written.
func StoreFailed(location string, cause error) *Error {
	return &Error{
		Code: CodeStoreFailed, Message: fmt.Sprintf("Failed to write %s.", location),
		Retryable: true,
		Details:   map[string]any{"location": location}, Cause: cause,
	}
}

// JobFailed creates a new Error for a failed external recognition job.
func JobFailed(job, reason string) *Error {
	return &Error{
		Code: CodeJobFailed, Message: fmt.Sprintf("Transcription job %q failed: %s", job, reason),
		Retryable: false,
		Details:   map[string]any{"job": job},
	}
}

// Internal creates a new Error for an unexpected internal error.
func Internal(cause error) *Error {
	return &Error{
		Code: CodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
