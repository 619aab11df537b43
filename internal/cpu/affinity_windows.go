//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
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

// setAffinity pins the current OS thread to the given core via the thread
// affinity mask (bit N = CPU N). Failures are ignored: affinity is an
// optimization, never a correctness requirement.
func setAffinity(core int) {
	handle, _, _ := getCurrentThread.Call()
	mask := uintptr(1 << core)
	_, _, _ = setThreadAffinityMask.Call(handle, mask)
}
