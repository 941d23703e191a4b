package validation

import (
	"strings"

	"github.com/debatelab/speakerkit/errors"
)

// Validator collects validation failures programmatically.
type Validator struct {
	failures []failure
}

type failure struct {
	field   string
	message string
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Check records a failure for field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.failures = append(v.failures, failure{field: field, message: message})
	}
}

// Valid reports whether no failures were recorded.
func (v *Validator) Valid() bool {
	return len(v.failures) == 0
}

// Error returns nil when valid, or an INVALID_INPUT error carrying every
// recorded failure as a detail.
func (v *Validator) Error() error {
	if v.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(v.failures))
	err := errors.Validation("")
	for _, f := range v.failures {
		msgs = append(msgs, f.message)
		err.WithDetail(f.field, f.message)
	}
	err.Message = strings.Join(msgs, "; ")
	return err
}
