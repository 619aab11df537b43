// Package engine defines the execution backend consumed by the spawn layer:
// the Task and Engine interfaces, the process-wide engine registry, and a
// default worker-pool engine.
//
// Scheduling policy lives entirely behind the Engine interface. The spawn
// layer only assumes that an engine accepts owned tasks and eventually runs
// or explicitly discards each one.
package engine

import (
	"context"
	"errors"
)

var (
	// ErrNoEngine is returned when no engine has been installed as the
	// process-wide default.
	ErrNoEngine = errors.New("engine: no engine installed")

	// ErrEngineClosed is returned by engines that refuse new submissions,
	// typically because they are shutting down.
	ErrEngineClosed = errors.New("engine: engine is shut down")
)

// Task is an owned, type-erased unit of asynchronous work. Once a Task is
// handed to an engine the engine owns it and will invoke exactly one of
// Run or Discard, exactly once.
type Task interface {
	// Run executes the task to completion. ctx is the engine's lifecycle
	// context; long-running bodies should honor its cancellation. Run
	// produces nothing directly, any result delivery is the task's own
	// business.
	Run(ctx context.Context)

	// Discard is invoked instead of Run when the engine drops the task
	// without ever running it, e.g. while flushing its queue during a
	// forced shutdown. Implementations use it to resolve whatever is
	// waiting on the task's outcome.
	Discard()
}

// Engine accepts owned tasks for asynchronous execution. Submit must not
// block on task execution and must be safe for concurrent use.
type Engine interface {
	Submit(t Task) error
}

// TaskFunc adapts a plain function to the Task interface. Discard is a no-op,
// so a dropped TaskFunc simply never runs.
type TaskFunc func(ctx context.Context)

// Run implements Task.
func (f TaskFunc) Run(ctx context.Context) { f(ctx) }

// Discard implements Task.
func (f TaskFunc) Discard() {}
