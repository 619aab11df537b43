package spawn_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/utkarsh5026/spawnme/engine"
)

// withPool starts a pool, installs it as the process-wide engine for the
// duration of the test, and tears both down afterwards.
func withPool(t *testing.T, opts ...engine.Option) *engine.Pool {
	t.Helper()

	p := engine.NewPool(opts...)
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("failed to start pool: %v", err)
	}

	prev := engine.Swap(p)
	t.Cleanup(func() {
		engine.Swap(prev)
		_ = p.Shutdown(5 * time.Second)
	})
	return p
}

// withoutEngine empties the registry for the duration of the test.
func withoutEngine(t *testing.T) {
	t.Helper()

	prev := engine.Swap(nil)
	t.Cleanup(func() { engine.Swap(prev) })
}

// discardEngine accepts every task and immediately discards it, standing in
// for a backend that drops work before running it.
type discardEngine struct{}

func (discardEngine) Submit(t engine.Task) error {
	t.Discard()
	return nil
}

// inlineEngine runs every task synchronously on the submitting goroutine.
// Handy when a test wants the outcome resolved by the time Submit returns.
type inlineEngine struct{}

func (inlineEngine) Submit(t engine.Task) error {
	t.Run(context.Background())
	return nil
}

// recordingEngine accepts tasks without running them, so handles stay
// Pending forever.
type recordingEngine struct {
	mu    sync.Mutex
	tasks []engine.Task
}

func (e *recordingEngine) Submit(t engine.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = append(e.tasks, t)
	return nil
}
