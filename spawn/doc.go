// Package spawn provides a small task-spawning layer over a pluggable
// execution engine.
//
// The package is built around three pieces: a stateless Spawner capability
// handle that hands owned tasks to whatever engine is currently active, the
// Spawn entry point that runs a function asynchronously and immediately
// returns a handle for its eventual result, and the JoinHandle through which
// that result is observed.
//
// # Basic Usage
//
//	ctx := context.Background()
//	p, err := engine.Init(ctx, engine.WithWorkerCount(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown(5 * time.Second)
//
//	handle := spawn.Spawn(func(ctx context.Context) int {
//	    return 42
//	})
//	v, err := handle.Join(ctx) // v == 42
//
// Spawn requires an installed engine and treats its absence as a caller
// precondition violation: it panics rather than returning an error. The
// lower-level Spawner.Submit returns the error instead, for callers that
// want to recover.
//
// # Explicit Engines
//
// The global registry is a convenience, not a requirement. An engine can be
// captured once and threaded explicitly:
//
//	s := spawn.Bind(p)
//	handle := spawn.On(s, func(ctx context.Context) string { return "done" })
//
// # Detached Execution
//
// A spawned task runs to completion whether or not its JoinHandle is still
// held. Dropping the handle does not cancel anything; the task's result is
// simply discarded when it arrives. Callers wanting cancellation build a
// cooperative signal into the task body, typically via the ctx the engine
// passes to it.
//
// # Outcomes
//
// Join resolves to exactly one of three outcomes:
//
//   - (v, nil): the task completed and produced v.
//   - (zero, ErrTaskDiscarded): the engine dropped the task before it ever
//     ran, e.g. while flushing its queue during a forced shutdown.
//   - (zero, *PanicError): the task body panicked. The error records the
//     panic value and stack and unwraps to ErrTaskAborted.
//
// Once resolved a handle never regresses: every later observation returns
// the same outcome.
package spawn
