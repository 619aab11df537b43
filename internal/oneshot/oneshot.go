// Package oneshot implements a single-use, single-producer/single-consumer
// channel carrying at most one value.
//
// A pair is created with New. The sender resolves the channel exactly once,
// either by sending a value or by closing it without one. The receiver
// observes that resolution any number of times and always sees the same
// outcome. Resumption of a blocked receiver is wakeup-driven; there is no
// polling loop.
package oneshot

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrDisconnected is reported by the receiver when the sender was closed
// without ever sending a value.
var ErrDisconnected = errors.New("oneshot: sender closed without sending a value")

const (
	statePending int32 = iota
	stateResolving
	stateSent
	stateClosed
)

// cell is the shared slot between a Sender and its Receiver.
//
// state transitions Pending -> Resolving -> (Sent | Closed) exactly once.
// value and err are written before done is closed, so any goroutine that
// observed done closed may read them without further synchronization.
type cell[T any] struct {
	state atomic.Int32
	value T
	err   error
	done  chan struct{}
}

func (c *cell[T]) resolve(v T, err error, terminal int32) bool {
	if !c.state.CompareAndSwap(statePending, stateResolving) {
		return false
	}
	c.value = v
	c.err = err
	c.state.Store(terminal)
	close(c.done)
	return true
}

// New creates a connected Sender/Receiver pair.
func New[T any]() (*Sender[T], *Receiver[T]) {
	c := &cell[T]{done: make(chan struct{})}
	return &Sender[T]{cell: c}, &Receiver[T]{cell: c}
}

// Sender is the producing half of the channel. It is single-owner: it may be
// moved between goroutines but must not be used from several at once.
type Sender[T any] struct {
	cell *cell[T]
}

// Send resolves the channel with v and reports whether this call performed
// the resolution. Sending into an already resolved channel, including one
// whose receiver will never be read, is a silent no-op; the value is simply
// dropped. This is the defined detached-execution behavior, not an error.
func (s *Sender[T]) Send(v T) bool {
	return s.cell.resolve(v, nil, stateSent)
}

// Close resolves the channel without a value. The receiver observes
// ErrDisconnected. Closing after a Send (or a previous Close) is a no-op.
func (s *Sender[T]) Close() {
	var zero T
	s.cell.resolve(zero, ErrDisconnected, stateClosed)
}

// CloseWithError resolves the channel without a value, recording err as the
// cause the receiver will observe. A nil err behaves like Close.
func (s *Sender[T]) CloseWithError(err error) {
	if err == nil {
		s.Close()
		return
	}
	var zero T
	s.cell.resolve(zero, err, stateClosed)
}

// Receiver is the consuming half of the channel. Like the Sender it is
// single-owner; ownership may move but not be shared.
type Receiver[T any] struct {
	cell *cell[T]
}

// Recv blocks until the channel resolves or ctx is done.
//
// On a sent value it returns (v, nil). If the sender closed without sending,
// it returns the recorded cause (ErrDisconnected unless CloseWithError
// supplied one). A ctx error is returned as-is and is not terminal: the
// channel stays pending and Recv may be called again.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	select {
	case <-r.cell.done:
		return r.cell.value, r.cell.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryRecv is a non-blocking probe. ready reports whether the channel has
// resolved; when it has, the value and error carry the terminal outcome.
func (r *Receiver[T]) TryRecv() (v T, ready bool, err error) {
	select {
	case <-r.cell.done:
		return r.cell.value, true, r.cell.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Done returns a channel closed once the oneshot has resolved. Useful in
// select statements alongside other events.
func (r *Receiver[T]) Done() <-chan struct{} {
	return r.cell.done
}

// IsReady reports whether the channel has resolved.
func (r *Receiver[T]) IsReady() bool {
	select {
	case <-r.cell.done:
		return true
	default:
		return false
	}
}
