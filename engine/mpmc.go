package engine

import (
	"context"
	"runtime"
	"sync/atomic"
)

const (
	// Cache line size for padding to prevent false sharing
	cacheLinePadding = 128
	// Maximum spin attempts before yielding or parking
	maxSpinAttempts = 10
)

// ringSlot is a single slot in the ring buffer. The sequence number
// synchronizes producers and consumers without locks.
type ringSlot struct {
	sequence uint64
	task     Task
	// Padding to prevent false sharing between slots
	_ [cacheLinePadding - 24]byte
}

// ringQueue is a lock-free multi-producer multi-consumer task queue built on
// a fixed ring buffer. Producers claim slots by CAS on tail, consumers by CAS
// on head; slot sequence numbers tell each side when a slot is ready for it.
//
// Based on the bounded MPMC queue design by Dmitry Vyukov, the same shape the
// rest of the ecosystem uses for high-contention submit paths.
type ringQueue struct {
	ring []ringSlot
	// Capacity mask (capacity - 1) for fast modulo
	mask uint64

	// Head and tail positions with padding to prevent false sharing
	_    [cacheLinePadding]byte
	head uint64
	_    [cacheLinePadding - 8]byte
	tail uint64
	_    [cacheLinePadding - 8]byte

	closed atomic.Bool

	// Notification channel for data (buffered, never closed)
	notifyC chan struct{}

	// Closed on shutdown to release parked consumers
	closeC chan struct{}

	capacity int
}

func newRingQueue(capacity int) *ringQueue {
	capacity = nextPowerOfTwo(capacity)
	ring := make([]ringSlot, capacity)

	for i := range ring {
		ring[i].sequence = uint64(i)
	}

	return &ringQueue{
		ring:     ring,
		mask:     uint64(capacity - 1),
		capacity: capacity,
		notifyC:  make(chan struct{}, 1),
		closeC:   make(chan struct{}),
	}
}

func (q *ringQueue) Enqueue(t Task) error {
	spinCount := 0

	for {
		// Recheck inside the loop: a queue closed while we were spinning
		// must not accept the task after the shutdown flush has run.
		if q.closed.Load() {
			return ErrQueueClosed
		}

		_, tail, slot, diff := q.load(false)
		if diff == 0 {
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				slot.task = t
				atomic.StoreUint64(&slot.sequence, tail+1)
				select {
				case q.notifyC <- struct{}{}:
				default:
				}
				return nil
			}
			continue
		}

		if diff < 0 {
			return ErrQueueFull
		}

		spinCount++
		if spinCount > maxSpinAttempts {
			runtime.Gosched()
			spinCount = 0
		}
	}
}

func (q *ringQueue) Dequeue(ctx context.Context) (Task, error) {
	spinCount := 0

	for {
		// Check cancellation first: a worker whose context is gone must
		// not race the shutdown flush for staged tasks.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if q.isDrained() {
			return nil, ErrQueueClosed
		}

		head, _, slot, diff := q.load(true)
		if diff == 0 {
			if t, ok := q.take(head, slot); ok {
				return t, nil
			}
			continue
		}

		spinCount++
		if spinCount < maxSpinAttempts {
			runtime.Gosched()
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.closeC:
			return nil, ErrQueueClosed
		case <-q.notifyC:
			spinCount = 0
		}
	}
}

// TryDequeue reports empty only when nothing is staged. Losing the head CAS
// to a racing consumer, or catching the head slot mid-publish, means the
// queue still holds work, so those cases retry instead of returning false;
// otherwise a shutdown flush could conclude while tasks remain queued.
func (q *ringQueue) TryDequeue() (Task, bool) {
	for {
		if q.isDrained() {
			return nil, false
		}

		head, _, slot, diff := q.load(true)
		if diff == 0 {
			if t, ok := q.take(head, slot); ok {
				return t, true
			}
			// Lost the CAS to a racing consumer; go look at the new head.
			continue
		}

		// Head slot not ready: either the queue is empty or a producer
		// claimed the slot and has not published it yet.
		if q.Len() == 0 {
			return nil, false
		}
		runtime.Gosched()
	}
}

func (q *ringQueue) take(head uint64, slot *ringSlot) (Task, bool) {
	if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
		t := slot.task
		slot.task = nil
		// Release the slot back to producers: if head is N, the slot's
		// next expected sequence is N + capacity.
		atomic.StoreUint64(&slot.sequence, head+q.mask+1)
		return t, true
	}
	return nil, false
}

// isDrained reports whether the queue is closed and empty.
func (q *ringQueue) isDrained() bool {
	if q.closed.Load() {
		head := atomic.LoadUint64(&q.head)
		tail := atomic.LoadUint64(&q.tail)
		if head >= tail {
			return true
		}
	}
	return false
}

// load atomically loads head and tail positions and the slot the caller is
// interested in, along with the difference between the slot's sequence and
// the sequence expected for the operation (0 means the slot is ready).
func (q *ringQueue) load(ishead bool) (head uint64, tail uint64, slot *ringSlot, diff int64) {
	head = atomic.LoadUint64(&q.head)
	tail = atomic.LoadUint64(&q.tail)

	pos := tail
	if ishead {
		pos = head
	}

	index := pos & q.mask
	slot = &q.ring[index]
	seq := atomic.LoadUint64(&slot.sequence)

	if ishead {
		diff = int64(seq) - int64(head+1)
	} else {
		diff = int64(seq) - int64(tail)
	}

	return
}

func (q *ringQueue) Close() {
	if q.closed.CompareAndSwap(false, true) {
		close(q.closeC)
	}
}

// Len returns the approximate number of staged tasks. Concurrent operations
// make this a snapshot, not a guarantee.
func (q *ringQueue) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)

	if tail > head {
		return int(tail - head)
	}
	return 0
}
