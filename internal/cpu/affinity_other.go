//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// PinWorker locks the calling goroutine to an OS thread. CPU pinning is not
// implemented on this platform.
func PinWorker(workerID int) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}
