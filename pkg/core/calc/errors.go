package calc

import "errors"

var (
	// ErrInvalidInput is returned by Compute when the snapshot cannot produce a result.
	ErrInvalidInput = errors.New("INVALID_INPUT")

	// ErrInvalidField is returned by ParseForm when a text field is not a number.
	ErrInvalidField = errors.New("INVALID_FIELD")
)
