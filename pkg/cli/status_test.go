package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// runStatusCapture runs the status command against the given PID file
// and returns what it wrote to stdout.
func runStatusCapture(t *testing.T, pidFile string, asJSON bool) (string, error) {
	t.Helper()

	oldPIDFile, oldJSON := statusPIDFile, jsonOutput
	statusPIDFile, jsonOutput = pidFile, asJSON
	t.Cleanup(func() {
		statusPIDFile, jsonOutput = oldPIDFile, oldJSON
	})

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w

	runErr := runStatus(nil, nil)

	w.Close()
	os.Stdout = oldStdout

	out, _ := io.ReadAll(r)
	return string(out), runErr
}

func TestRunStatus_NoServer(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "nonexistent.pid")

	out, err := runStatusCapture(t, pidPath, false)
	if err != nil {
		t.Errorf("status should not return error when server not running: %v", err)
	}
	if !strings.Contains(out, "not running") {
		t.Errorf("output should say not running, got: %q", out)
	}
}

func TestRunStatus_StalePIDFile(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "stale.pid")

	info := &PIDFile{
		PID:       9999999,
		StartTime: time.Now(),
		Version:   "0.1.0",
		Port:      8080,
	}
	if err := WritePIDFile(pidPath, info); err != nil {
		t.Fatalf("failed to write test PID file: %v", err)
	}

	out, err := runStatusCapture(t, pidPath, false)
	if err != nil {
		t.Errorf("status should not return error for stale PID file: %v", err)
	}
	if !strings.Contains(out, "not running") {
		t.Errorf("output should say not running for a stale PID, got: %q", out)
	}
}

func TestRunStatus_JSONNotRunning(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "nonexistent.pid")

	out, err := runStatusCapture(t, pidPath, true)
	if err != nil {
		t.Errorf("status --json should not error: %v", err)
	}

	var parsed StatusOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("status --json should emit valid JSON, got %q: %v", out, err)
	}
	if parsed.Running {
		t.Error("running should be false with no PID file")
	}
}

func TestStatusCmdFlags(t *testing.T) {
	if statusCmd.Flags().Lookup("pid-file") == nil {
		t.Error("status should have --pid-file flag")
	}
}

func TestColorHelpers(t *testing.T) {
	// Test output is not a terminal, so no ANSI codes should be added
	if got := colorGreen("running"); got != "running" {
		t.Errorf("colorGreen without a terminal should pass through, got %q", got)
	}
	if got := colorRed("stopped"); got != "stopped" {
		t.Errorf("colorRed without a terminal should pass through, got %q", got)
	}
}
