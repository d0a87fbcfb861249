package cursor

import "errors"

var (
	// ErrInvalidArgument reports an argument of the wrong shape, such as a
	// nil traversal source or a node from another tree.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStop can be returned by a traversal callback to end the traversal
	// early without error.
	ErrStop = errors.New("stop traversal")
)

// Error records the cursor operation that failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
