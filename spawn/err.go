package spawn

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskAborted reports that a spawned task terminated abnormally
	// before producing a result. PanicError unwraps to it, so
	// errors.Is(err, ErrTaskAborted) matches any abnormal termination.
	ErrTaskAborted = errors.New("spawn: task aborted before producing a result")

	// ErrTaskDiscarded reports that the engine dropped the task without
	// ever running it, typically during a forced shutdown.
	ErrTaskDiscarded = errors.New("spawn: task discarded by the engine before running")
)

// PanicError is the outcome observed on a JoinHandle whose task body
// panicked. Value is the recovered panic value and Stack the goroutine stack
// captured at recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("spawn: task panicked: %v\nstack trace:\n%s", e.Value, e.Stack)
}

// Unwrap makes PanicError match ErrTaskAborted under errors.Is.
func (e *PanicError) Unwrap() error { return ErrTaskAborted }
