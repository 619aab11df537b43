package spawn

import (
	"context"
	"errors"
	"time"

	"github.com/utkarsh5026/spawnme/internal/oneshot"
)

// JoinHandle observes the eventual result of a spawned task. It owns the
// receiving half of the task's single-use result channel and is itself
// single-owner: it may be moved between goroutines but not duplicated.
//
// A handle is Pending until the task resolves it exactly once, either with
// a value or abnormally (see the package documentation for the outcome
// taxonomy). Once resolved it never regresses: every subsequent observation
// returns the same outcome.
//
// Dropping a JoinHandle does not cancel or otherwise affect the in-flight
// task; it keeps running and its result is discarded on arrival.
type JoinHandle[T any] struct {
	rx *oneshot.Receiver[T]
}

// Join blocks until the task resolves or ctx is done, whichever comes
// first. This is the handle's only suspension point and it is
// wakeup-driven; nothing spins while waiting.
//
// A ctx error (context.Canceled, context.DeadlineExceeded) is returned
// as-is and is not terminal: the handle stays Pending and Join may be
// called again.
func (h *JoinHandle[T]) Join(ctx context.Context) (T, error) {
	v, err := h.rx.Recv(ctx)
	if errors.Is(err, oneshot.ErrDisconnected) {
		// A bare close with no recorded cause: the task vanished without
		// producing anything. Report it as a discard.
		var zero T
		return zero, ErrTaskDiscarded
	}
	return v, err
}

// Get blocks without a deadline until the task resolves.
func (h *JoinHandle[T]) Get() (T, error) {
	return h.Join(context.Background())
}

// GetWithTimeout is Join bounded by a timeout.
func (h *JoinHandle[T]) GetWithTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return h.Join(ctx)
}

// TryGet observes the handle without blocking. ready reports whether the
// task has resolved; when it has, the value and error carry the terminal
// outcome, with the same meaning as Join's.
func (h *JoinHandle[T]) TryGet() (v T, ready bool, err error) {
	v, ready, err = h.rx.TryRecv()
	if ready && errors.Is(err, oneshot.ErrDisconnected) {
		err = ErrTaskDiscarded
	}
	return v, ready, err
}

// Done returns a channel closed once the task has resolved, for use in
// select statements. After Done is closed, TryGet reports the outcome
// without blocking.
func (h *JoinHandle[T]) Done() <-chan struct{} {
	return h.rx.Done()
}

// IsReady reports whether the task has resolved.
func (h *JoinHandle[T]) IsReady() bool {
	return h.rx.IsReady()
}
