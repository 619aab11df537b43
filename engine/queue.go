package engine

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQueueFull   = errors.New("engine: task queue is full")
	ErrQueueClosed = errors.New("engine: task queue is closed")
)

// taskQueue is the staging area between Submit and the workers. Enqueue must
// never block on task execution; a full queue is reported, not waited out.
type taskQueue interface {
	// Enqueue stages a task for a worker. Returns ErrQueueClosed after
	// Close, or ErrQueueFull when the queue is at capacity.
	Enqueue(t Task) error

	// Dequeue blocks until a task is available, the queue is closed and
	// drained (ErrQueueClosed), or ctx is done.
	Dequeue(ctx context.Context) (Task, error)

	// TryDequeue removes a task without blocking. Used to flush leftovers
	// during a forced shutdown.
	TryDequeue() (Task, bool)

	// Close stops further enqueues. Already staged tasks remain dequeueable.
	Close()

	// Len is the approximate number of staged tasks.
	Len() int
}

// chanQueue is the default queue: a buffered channel guarded against
// enqueue-after-close. The RWMutex only serializes Enqueue against Close;
// dequeues go straight to the channel.
type chanQueue struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan Task
}

func newChanQueue(capacity int) *chanQueue {
	return &chanQueue{
		tasks: make(chan Task, capacity),
	}
}

func (q *chanQueue) Enqueue(t Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *chanQueue) Dequeue(ctx context.Context) (Task, error) {
	// Check cancellation first: a worker whose context is gone must not
	// race the shutdown flush for staged tasks.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	select {
	case t, ok := <-q.tasks:
		if !ok {
			return nil, ErrQueueClosed
		}
		return t, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *chanQueue) TryDequeue() (Task, bool) {
	select {
	case t, ok := <-q.tasks:
		if !ok {
			return nil, false
		}
		return t, true
	default:
		return nil, false
	}
}

func (q *chanQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
}

func (q *chanQueue) Len() int {
	return len(q.tasks)
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}
