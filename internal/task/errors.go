package task

import "fmt"

// ValidationError reports rejected input to a list mutation.
type ValidationError struct {
	Field string // name of the offending field
	Err   error  // underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// OutOfRangeError reports a 1-based position outside the list bounds.
type OutOfRangeError struct {
	Position int
	Length   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("position %d out of range [1, %d]", e.Position, e.Length)
}
