package spawn

import "github.com/utkarsh5026/spawnme/engine"

// Spawner is a stateless capability handle for submitting owned tasks to an
// execution engine. The zero value is ready to use and resolves the
// process-wide engine at submit time; Bind produces handles tied to an
// explicit engine instead.
//
// A Spawner carries no identity: clones and freshly constructed handles are
// behaviorally interchangeable, and a Spawner may be shared freely across
// goroutines. The single unexported field keeps construction with arbitrary
// state outside the package.
type Spawner struct {
	bound engine.Engine
}

// New returns a Spawner that resolves the process-wide engine on each
// Submit. Equivalent to the zero value.
func New() Spawner {
	return Spawner{}
}

// Bind returns a Spawner tied to e, bypassing the global registry entirely.
// This is the dependency-injected alternative for code that prefers an
// explicitly passed executor: capture the handle once at startup, thread it
// through constructors, and spawn call sites stay one-liners.
func Bind(e engine.Engine) Spawner {
	return Spawner{bound: e}
}

// Clone returns an equivalent handle. Present for symmetry with other
// capability handles; copying the value does the same thing.
func (s Spawner) Clone() Spawner {
	return s
}

// Submit hands t to the active engine for asynchronous execution. It does
// not block and does not run any part of the task itself; on success the
// engine owns t.
//
// Returns engine.ErrNoEngine when the Spawner is unbound and no engine is
// installed, or the engine's own rejection (e.g. engine.ErrEngineClosed
// during shutdown). Submission failures are never retried here; retry, if
// desired, is the caller's business.
func (s Spawner) Submit(t engine.Task) error {
	eng := s.bound
	if eng == nil {
		var err error
		eng, err = engine.Current()
		if err != nil {
			return err
		}
	}
	return eng.Submit(t)
}
