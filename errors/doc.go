// Package errors provides the error taxonomy for speakerkit.
// It implements structured error values with machine-readable codes and
// retryable detection so callers can distinguish fatal-per-transcript
// conditions from batch-continuable ones without matching message strings.
package errors
