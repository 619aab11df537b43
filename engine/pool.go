package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/spawnme/internal/cpu"
)

var (
	ErrShutdownTimeout = errors.New("engine: shutdown timeout reached")
)

// Pool is the default execution engine: a long-running set of worker
// goroutines draining a shared task queue. It implements the Engine
// interface, so a started Pool can be handed to Install and serve every
// spawn call in the process.
//
// A Pool makes no promises about which worker runs a task or in which order
// independently submitted tasks start; it only guarantees that every
// accepted task is eventually run, or explicitly discarded during a forced
// shutdown.
type Pool struct {
	conf  *poolConfig
	mu    sync.RWMutex
	state *poolState
}

// poolState holds the runtime state for a started pool.
type poolState struct {
	queue    taskQueue
	cancel   context.CancelFunc
	started  atomic.Bool
	shutdown atomic.Bool
	done     chan struct{} // Closed when all workers have exited
}

// NewPool creates an unstarted pool. Call Start to launch the workers.
//
// Example:
//
//	p := engine.NewPool(engine.WithWorkerCount(8))
//	if err := p.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Shutdown(5 * time.Second)
//	engine.Install(p)
func NewPool(opts ...Option) *Pool {
	return &Pool{
		conf: newConfig(opts...),
	}
}

// Start launches the worker goroutines. ctx bounds the lifetime of the pool
// and is the context passed to every task body; cancelling it stops workers
// after their current task. Returns an error if the pool is already started.
// A pool is single-use: once shut down it cannot be restarted.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != nil {
		if p.state.shutdown.Load() {
			return errors.New("pool is shut down")
		}
		if p.state.started.Load() {
			return errors.New("pool already started")
		}
	}

	var queue taskQueue
	if p.conf.lockFreeQueue {
		queue = newRingQueue(p.conf.queueCapacity)
	} else {
		queue = newChanQueue(p.conf.queueCapacity)
	}

	ctx, cancel := context.WithCancel(ctx)
	state := &poolState{
		queue:  queue,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	p.state = state
	state.started.Store(true)

	n := p.conf.workerCount
	var g errgroup.Group

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return p.worker(ctx, i, queue)
		})
	}

	go func() {
		_ = g.Wait()
		close(state.done)
	}()

	return nil
}

// Submit stages t for execution. It never blocks on task execution: a full
// queue is reported as ErrQueueFull, a stopped pool as an error. On success
// the pool owns t and will call exactly one of Run or Discard on it.
func (p *Pool) Submit(t Task) error {
	p.mu.RLock()
	state := p.state
	p.mu.RUnlock()

	if state == nil || !state.started.Load() {
		return errors.New("pool not started")
	}

	if state.shutdown.Load() {
		return ErrEngineClosed
	}

	return state.queue.Enqueue(t)
}

// Shutdown gracefully stops the pool. New submissions are refused
// immediately; workers keep draining the queue until it is empty, then exit.
//
// timeout bounds the wait (0 = wait forever). If the timeout is exceeded the
// pool cancels its workers, discards every task still queued, and returns
// ErrShutdownTimeout. Discarded tasks never run; their Discard hook is
// invoked so waiters can observe the drop.
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.mu.Lock()
	state := p.state
	if state == nil || !state.started.Load() {
		p.mu.Unlock()
		return errors.New("pool not started")
	}

	if !state.shutdown.CompareAndSwap(false, true) {
		p.mu.Unlock()
		return errors.New("pool already shut down")
	}
	p.mu.Unlock()

	// Stop further enqueues; workers drain what is already staged.
	state.queue.Close()

	err := waitUntil(state.done, timeout)
	state.cancel()

	if err != nil {
		// The drain timed out, so workers are still live. Let them
		// observe the cancellation and exit before flushing, otherwise
		// the flush races them for staged tasks. A task body that
		// ignores its context cannot hold this up forever: the wait is
		// bounded by the same timeout.
		_ = waitUntil(state.done, timeout)
	}

	// Flush whatever the workers never reached. After a clean drain the
	// queue is empty and this is a no-op; after a timeout, or when the
	// pool's context was cancelled out from under the workers, every
	// leftover task gets its Discard so nothing waits forever.
	for {
		t, ok := state.queue.TryDequeue()
		if !ok {
			break
		}
		t.Discard()
		debugLog("discarded queued task during shutdown")
	}

	return err
}

// worker is the long-running loop executed by each pool goroutine.
func (p *Pool) worker(ctx context.Context, id int, queue taskQueue) error {
	if p.conf.pinWorkers {
		release := cpu.PinWorker(id)
		defer release()
	}

	for {
		t, err := queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) {
				return nil
			}
			return err
		}

		if p.conf.rateLimiter != nil {
			if err := p.conf.rateLimiter.Wait(ctx); err != nil {
				t.Discard()
				return err
			}
		}

		runContained(ctx, t)
	}
}

// runContained runs the task, containing any panic that escapes its body so
// a single task cannot take down the worker. Task adapters that care about
// the panic (like the spawn layer) recover it themselves before it reaches
// this point.
func runContained(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			debugLog("task panic contained by worker: %v", r)
		}
	}()
	t.Run(ctx)
}

// waitUntil blocks until either the done channel is closed or the timeout is
// reached. Used during graceful shutdown to wait for workers to finish.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// Init is the usual one-call entry point: it creates a pool, starts it, and
// installs it as the process-wide engine so that subsequent spawn calls find
// it. The returned pool is already serving; the caller is responsible for
// shutting it down.
func Init(ctx context.Context, opts ...Option) (*Pool, error) {
	p := NewPool(opts...)
	if err := p.Start(ctx); err != nil {
		return nil, err
	}
	Install(p)
	return p, nil
}
