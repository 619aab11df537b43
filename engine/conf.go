package engine

import (
	"runtime"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a Pool.
type Option func(*poolConfig)

type poolConfig struct {
	workerCount   int
	queueCapacity int
	lockFreeQueue bool
	rateLimiter   *rate.Limiter
	pinWorkers    bool
}

func newConfig(opts ...Option) *poolConfig {
	cfg := &poolConfig{
		workerCount: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.queueCapacity == 0 {
		cfg.queueCapacity = cfg.workerCount * 64
	}

	return cfg
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) Option {
	return func(cfg *poolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithQueueCapacity sets the capacity of the task queue. Submissions beyond
// this capacity fail with ErrQueueFull rather than blocking the caller.
// If not specified, defaults to 64 slots per worker.
func WithQueueCapacity(size int) Option {
	return func(cfg *poolConfig) {
		if size > 0 {
			cfg.queueCapacity = size
		}
	}
}

// WithLockFreeQueue switches the pool's task queue to a lock-free MPMC ring
// buffer. Worth it under heavy multi-goroutine submission pressure; the
// default channel queue is simpler and fine for most workloads.
func WithLockFreeQueue() Option {
	return func(cfg *poolConfig) {
		cfg.lockFreeQueue = true
	}
}

// WithRateLimit caps how fast workers pick up tasks.
// tasksPerSecond specifies the sustained rate, burst the burst allowance.
// Useful when spawned tasks hit external services or APIs.
//
// Example:
//
//	WithRateLimit(10, 5) // start at most 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *poolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithPinnedWorkers pins each worker goroutine to an OS thread and, where
// the platform supports it, to a CPU core. Helps cache locality for
// CPU-bound task bodies; pointless for I/O-bound ones.
func WithPinnedWorkers() Option {
	return func(cfg *poolConfig) {
		cfg.pinWorkers = true
	}
}
