package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultPIDPath(t *testing.T) {
	path := DefaultPIDPath()
	if path == "" {
		t.Error("DefaultPIDPath returned empty string")
	}

	// Should end in .userd/userd.pid
	if filepath.Base(path) != "userd.pid" {
		t.Errorf("expected filename userd.pid, got %s", filepath.Base(path))
	}
}

func TestWriteAndReadPIDFile(t *testing.T) {
	tmpDir := t.TempDir()
	pidPath := filepath.Join(tmpDir, "test.pid")

	now := time.Now().Truncate(time.Second)
	info := &PIDFile{
		PID:         12345,
		StartTime:   now,
		Version:     "0.1.0",
		Host:        "localhost",
		Port:        8080,
		ConfigFile:  "/path/to/userd.yaml",
		UsersSeeded: 3,
	}

	if err := WritePIDFile(pidPath, info); err != nil {
		t.Fatalf("WritePIDFile failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(pidPath); os.IsNotExist(err) {
		t.Error("PID file was not created")
	}

	readInfo, err := ReadPIDFile(pidPath)
	if err != nil {
		t.Fatalf("ReadPIDFile failed: %v", err)
	}

	if readInfo.PID != info.PID {
		t.Errorf("PID mismatch: got %d, want %d", readInfo.PID, info.PID)
	}
	if readInfo.Version != info.Version {
		t.Errorf("Version mismatch: got %s, want %s", readInfo.Version, info.Version)
	}
	if !readInfo.StartTime.Equal(info.StartTime) {
		t.Errorf("StartTime mismatch: got %v, want %v", readInfo.StartTime, info.StartTime)
	}
	if readInfo.Port != info.Port {
		t.Errorf("Port mismatch: got %d, want %d", readInfo.Port, info.Port)
	}
	if readInfo.ConfigFile != info.ConfigFile {
		t.Errorf("ConfigFile mismatch: got %s, want %s", readInfo.ConfigFile, info.ConfigFile)
	}
	if readInfo.UsersSeeded != info.UsersSeeded {
		t.Errorf("UsersSeeded mismatch: got %d, want %d", readInfo.UsersSeeded, info.UsersSeeded)
	}
}

func TestWritePIDFile_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	pidPath := filepath.Join(tmpDir, "nested", "dir", "test.pid")

	info := &PIDFile{PID: 1, StartTime: time.Now(), Port: 8080}
	if err := WritePIDFile(pidPath, info); err != nil {
		t.Fatalf("WritePIDFile should create parent directories: %v", err)
	}

	if _, err := os.Stat(pidPath); err != nil {
		t.Errorf("PID file was not created: %v", err)
	}
}

func TestReadPIDFile_NotFound(t *testing.T) {
	_, err := ReadPIDFile("/nonexistent/path/test.pid")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestReadPIDFile_Corrupt(t *testing.T) {
	tmpDir := t.TempDir()
	pidPath := filepath.Join(tmpDir, "corrupt.pid")
	if err := os.WriteFile(pidPath, []byte("not json"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, err := ReadPIDFile(pidPath); err == nil {
		t.Error("expected error for corrupt PID file")
	}
}

func TestRemovePIDFile(t *testing.T) {
	tmpDir := t.TempDir()
	pidPath := filepath.Join(tmpDir, "test.pid")

	if err := os.WriteFile(pidPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if err := RemovePIDFile(pidPath); err != nil {
		t.Errorf("RemovePIDFile failed: %v", err)
	}

	if _, err := os.Stat(pidPath); !os.IsNotExist(err) {
		t.Error("PID file still exists after removal")
	}

	// Removing non-existent file should not error
	if err := RemovePIDFile(pidPath); err != nil {
		t.Errorf("RemovePIDFile on non-existent file should not error: %v", err)
	}
}

func TestPIDFile_IsRunning(t *testing.T) {
	// Current process should be running
	info := &PIDFile{PID: os.Getpid()}
	if !info.IsRunning() {
		t.Error("current process should be detected as running")
	}

	// Invalid PID should not be running
	info = &PIDFile{PID: 0}
	if info.IsRunning() {
		t.Error("PID 0 should not be running")
	}

	// Very high PID unlikely to exist
	info = &PIDFile{PID: 9999999}
	if info.IsRunning() {
		t.Error("PID 9999999 should not be running")
	}
}

func TestPIDFile_FormatUptime(t *testing.T) {
	tests := []struct {
		name      string
		startTime time.Time
		wantMatch string // partial match
	}{
		{
			name:      "seconds",
			startTime: time.Now().Add(-30 * time.Second),
			wantMatch: "s",
		},
		{
			name:      "minutes",
			startTime: time.Now().Add(-5 * time.Minute),
			wantMatch: "m",
		},
		{
			name:      "hours",
			startTime: time.Now().Add(-2 * time.Hour),
			wantMatch: "h",
		},
		{
			name:      "days",
			startTime: time.Now().Add(-25 * time.Hour),
			wantMatch: "d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &PIDFile{StartTime: tt.startTime}
			uptime := info.FormatUptime()
			if uptime == "" {
				t.Fatal("FormatUptime returned empty string")
			}
			if !strings.Contains(uptime, tt.wantMatch) {
				t.Errorf("uptime %q should contain %q", uptime, tt.wantMatch)
			}
		})
	}
}

func TestPIDFile_URL(t *testing.T) {
	info := &PIDFile{Host: "localhost", Port: 8080}
	if info.URL() != "http://localhost:8080" {
		t.Errorf("URL mismatch: got %s, want http://localhost:8080", info.URL())
	}

	// Empty host should default to localhost
	info = &PIDFile{Port: 3000}
	if info.URL() != "http://localhost:3000" {
		t.Errorf("empty host should default to localhost, got %s", info.URL())
	}
}
