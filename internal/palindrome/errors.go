package palindrome

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAlgorithm is returned for an unrecognized algorithm tag.
	ErrInvalidAlgorithm = errors.New("palindrome: invalid algorithm")

	// ErrInputTooLarge is returned when an input or its trace exceeds the
	// configured bounds.
	ErrInputTooLarge = errors.New("palindrome: input too large")

	// ErrInternalInvariant marks a programming fault inside an engine.
	ErrInternalInvariant = errors.New("palindrome: internal invariant violated")
)

// InvariantError describes a broken engine invariant. Engines panic with it;
// Trace recovers it into an error wrapping ErrInternalInvariant.
type InvariantError struct {
	Algorithm Algorithm
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInternalInvariant, e.Algorithm, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInternalInvariant }

func invariant(algo Algorithm, format string, args ...any) {
	panic(&InvariantError{Algorithm: algo, Detail: fmt.Sprintf(format, args...)})
}

// budgetExceeded unwinds a run whose trace grew past its step budget.
type budgetExceeded struct {
	limit int
}

// recoverRun converts the engine panics above into errors. Any other panic
// is re-raised.
func recoverRun(algo Algorithm, err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case *InvariantError:
		*err = v
	case budgetExceeded:
		*err = fmt.Errorf("%w: %s trace exceeds %d steps", ErrInputTooLarge, algo, v.limit)
	default:
		panic(r)
	}
}
