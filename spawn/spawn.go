package spawn

import (
	"context"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/spawnme/internal/oneshot"
)

// Spawn runs fn asynchronously on the process-wide engine and returns a
// JoinHandle for its eventual result. It returns immediately; when the task
// actually starts is the engine's business.
//
// fn and its result must be safe to move across goroutines. The ctx passed
// to fn is the engine's lifecycle context; cooperative cancellation hangs
// off it.
//
// Spawn can only be called after an engine has been installed (see
// engine.Init / engine.Install). Calling it without one is a precondition
// violation and panics; use Spawner.Submit for a recoverable error instead.
//
// Example:
//
//	handle := spawn.Spawn(func(ctx context.Context) int {
//	    return 42
//	})
//	v, err := handle.Join(ctx) // v == 42
func Spawn[T any](fn func(ctx context.Context) T) *JoinHandle[T] {
	return On(Spawner{}, fn)
}

// On is Spawn against an explicit Spawner, for callers that bound their
// engine with Bind instead of installing it globally. The contract is
// otherwise identical, including the panic when submission fails.
func On[T any](s Spawner, fn func(ctx context.Context) T) *JoinHandle[T] {
	tx, rx := oneshot.New[T]()

	t := &resultTask[T]{fn: fn, tx: tx}
	if err := s.Submit(t); err != nil {
		panic(fmt.Sprintf("spawn: cannot spawn task: %v", err))
	}

	return &JoinHandle[T]{rx: rx}
}

// resultTask is the generic adapter that turns a typed task body into the
// engine's type-erased Task: one heap-allocated unit of work per spawn,
// owning the body and the sender half of the result channel.
type resultTask[T any] struct {
	fn func(ctx context.Context) T
	tx *oneshot.Sender[T]
}

// Run executes the body and funnels its value into the result channel. A
// send whose receiver is long gone is a silent no-op, which is exactly the
// detached fire-and-forget semantics wanted here. If the body panics the
// channel is closed with a PanicError carrying the stack instead.
func (t *resultTask[T]) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			t.tx.CloseWithError(&PanicError{Value: r, Stack: buf[:n]})
		}
	}()

	t.tx.Send(t.fn(ctx))
}

// Discard resolves the result channel with ErrTaskDiscarded. The engine
// calls it when it drops the task without running it.
func (t *resultTask[T]) Discard() {
	t.tx.CloseWithError(ErrTaskDiscarded)
}
