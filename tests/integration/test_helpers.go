// Package integration provides integration tests that exercise the user API
// server over real TCP listeners.
package integration

import (
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// Shared port counter so concurrent tests never hand out the same port
// twice. Starts at 30000 to stay clear of common service ports.
var portCounter uint32 = 30000

// GetFreePortSafe returns a unique port for testing that won't collide
// with other tests running in parallel.
func GetFreePortSafe() int {
	for attempts := 0; attempts < 100; attempts++ {
		port := int(atomic.AddUint32(&portCounter, 1))
		if isPortFree(port) {
			return port
		}
	}
	// Every candidate was taken; hand out the next counter value anyway.
	return int(atomic.AddUint32(&portCounter, 1))
}

// isPortFree checks if a port is available for binding.
func isPortFree(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}

// waitForReady polls the health endpoint until the server answers 200,
// failing the test after five seconds.
func waitForReady(t *testing.T, port int) {
	t.Helper()
	url := fmt.Sprintf("http://localhost:%d/health", port)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server on port %d never became healthy", port)
}
