//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinWorker locks the calling goroutine to an OS thread and pins that thread
// to a CPU core derived from workerID. Returns a release function to defer.
func PinWorker(workerID int) func() {
	runtime.LockOSThread()
	setAffinity(workerID % runtime.NumCPU())

	return func() {
		runtime.UnlockOSThread()
	}
}

// setAffinity pins the current OS thread to the given core. Failures are
// ignored: affinity is an optimization, never a correctness requirement.
func setAffinity(core int) {
	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	_ = unix.SchedSetaffinity(0, &mask) // 0 = current thread
}
