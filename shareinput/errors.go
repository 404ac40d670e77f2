package shareinput

import (
	"errors"
	"fmt"
)

// ErrMalformedInput matches every *MalformedInputError via errors.Is.
var ErrMalformedInput = errors.New("shareinput: malformed input")

// MalformedInputError describes why an input document was rejected.
type MalformedInputError struct {
	// Key is the top-level key of the offending entry, empty for document-level problems.
	Key    string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "shareinput: malformed input"
	if e.Key != "" {
		msg += fmt.Sprintf(" at key %q", e.Key)
	}

	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

func malformed(key, reason string, err error) error {
	return &MalformedInputError{Key: key, Reason: reason, Err: err}
}
