package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateLabel reports a label submitted twice to the same Pool.
	ErrDuplicateLabel = errors.New("duplicate job label")

	// ErrNotFound reports a label that was never submitted.
	ErrNotFound = errors.New("no job with label")

	// ErrPoolClosed reports a submission after Shutdown.
	ErrPoolClosed = errors.New("pool is shut down")
)

// ValidationError reports a malformed JobSpec.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("job spec missing %q", e.Field)
}
