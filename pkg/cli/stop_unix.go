//go:build !windows

package cli

import (
	"os"
	"syscall"
)

// Signals for Unix systems
var (
	signalTerm = syscall.SIGTERM
	signalKill = syscall.SIGKILL
)

// signalTermName returns the name of the graceful shutdown signal.
func signalTermName() string {
	return "SIGTERM"
}

// signalKillName returns the name of the force kill signal.
func signalKillName() string {
	return "SIGKILL"
}

// checkProcessRunning probes a PID with signal 0. PIDs <= 0 are rejected
// up front: kill(0, 0) would target the whole process group.
func checkProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
