package errors

// Code represents a machine-readable error code.
type Code string

// Input validation errors (fatal for the item that carried the input)
const (
	// CodeInvalidSegment indicates a segment with malformed timing
	// (negative start or end before start).
	CodeInvalidSegment Code = "INVALID_SEGMENT"
	// CodeInvalidPayload indicates a transcript payload that could not be
	// parsed or failed validation.
	CodeInvalidPayload Code = "INVALID_PAYLOAD"
	// CodeInvalidInput indicates invalid caller-supplied input.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeMissingField indicates a required field is missing.
	CodeMissingField Code = "MISSING_FIELD"
)

// Resource and addressing errors
const (
	// CodeNotFound indicates the requested resource was not found.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnsupportedScheme indicates a location URI with a scheme no
	// storage backend is registered for.
	CodeUnsupportedScheme Code = "UNSUPPORTED_SCHEME"
)

// Collaborator errors (recoverable at the batch level)
const (
	// CodeFetchFailed indicates a transcript source could not be read.
	// A source that is reachable but absent is the narrower NOT_FOUND;
	// FETCH_FAILED covers transport failures that may succeed on retry.
	CodeFetchFailed Code = "FETCH_FAILED"
	// CodeStoreFailed indicates an output artifact could not be written.
	CodeStoreFailed Code = "STORE_FAILED"
	// CodeJobFailed indicates an external recognition job failed.
	CodeJobFailed Code = "JOB_FAILED"
)

// Internal errors
const (
	// CodeInternal indicates an unexpected internal error.
	CodeInternal Code = "INTERNAL_ERROR"
)

var retryableCodes = map[Code]bool{
	CodeFetchFailed: true,
	CodeStoreFailed: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Merge and aggregation errors are never retryable: the computation is
// deterministic, so retrying changes nothing. Only fetch/store steps are.
func IsRetryableCode(code Code) bool {
	return retryableCodes[code]
}
