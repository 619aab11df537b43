package engine

import "sync/atomic"

// The process-wide active engine. Resolved at submit time by capability
// handles that were not explicitly bound to an engine.
var active atomic.Pointer[holder]

// holder wraps the Engine interface value so it can live behind an
// atomic.Pointer.
type holder struct {
	engine Engine
}

// Install makes e the process-wide engine. It is typically called once
// during startup, before any spawn call. Panics if e is nil; use Swap(nil)
// to uninstall.
func Install(e Engine) {
	if e == nil {
		panic("engine: Install called with a nil engine")
	}
	active.Store(&holder{engine: e})
}

// Swap replaces the process-wide engine with e (which may be nil to leave
// no engine installed) and returns the previously installed engine, or nil.
// Useful in tests and in harnesses that stack engines.
func Swap(e Engine) Engine {
	var h *holder
	if e != nil {
		h = &holder{engine: e}
	}
	old := active.Swap(h)
	if old == nil {
		return nil
	}
	return old.engine
}

// Current returns the process-wide engine, or ErrNoEngine if none has been
// installed.
func Current() (Engine, error) {
	h := active.Load()
	if h == nil {
		return nil, ErrNoEngine
	}
	return h.engine, nil
}
