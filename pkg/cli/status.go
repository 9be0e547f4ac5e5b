package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

var statusPIDFile string

// StatusOutput is the JSON shape of the status command's result.
type StatusOutput struct {
	Running    bool   `json:"running"`
	Responding bool   `json:"responding,omitempty"`
	PID        int    `json:"pid,omitempty"`
	Version    string `json:"version,omitempty"`
	URL        string `json:"url,omitempty"`
	Uptime     string `json:"uptime,omitempty"`
	UserCount  int    `json:"userCount,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the userd server is running",
	Long: `Show whether the userd server is running.

Reads the PID file written by userd serve, verifies the process is alive,
and queries the server for live details like the user count.`,
	Example: `  userd status
  userd status --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusPIDFile, "pid-file", DefaultPIDPath(), "Path to PID file")
}

func runStatus(_ *cobra.Command, _ []string) error {
	pf, err := ReadPIDFile(statusPIDFile)
	if err != nil {
		// PID file doesn't exist or is invalid
		return printStatusNotRunning()
	}

	if !pf.IsRunning() {
		output.Warn("stale PID file found (process %d is gone): %s", pf.PID, statusPIDFile)
		return printStatusNotRunning()
	}

	out := StatusOutput{
		Running: true,
		PID:     pf.PID,
		Version: pf.Version,
		URL:     pf.URL(),
		Uptime:  pf.FormatUptime(),
	}

	// The process is alive; ask it for live details. A short timeout keeps
	// status snappy when the server is wedged.
	client := NewClient(pf.URL(), WithTimeout(2*time.Second))
	if st, err := client.GetStatus(); err == nil {
		out.Responding = true
		out.UserCount = st.UserCount
	}

	return printResult(out, func() {
		fmt.Printf("userd is %s\n", colorGreen("running"))
		fmt.Println()
		fmt.Printf("  PID:      %d\n", out.PID)
		if out.Version != "" {
			fmt.Printf("  Version:  %s\n", out.Version)
		}
		fmt.Printf("  URL:      %s\n", out.URL)
		fmt.Printf("  Uptime:   %s\n", out.Uptime)
		if out.Responding {
			fmt.Printf("  Users:    %d\n", out.UserCount)
		} else {
			fmt.Println()
			fmt.Printf("  %s the process is alive but not answering at %s\n", colorRed("Warning:"), out.URL)
		}
	})
}

func printStatusNotRunning() error {
	return printResult(StatusOutput{Running: false}, func() {
		fmt.Printf("userd is %s\n", colorRed("not running"))
		fmt.Println()
		fmt.Println("Start it with: userd serve")
	})
}

// colorGreen returns text wrapped in ANSI green color codes.
func colorGreen(s string) string {
	if !isTerminal() {
		return s
	}
	return "\033[32m" + s + "\033[0m"
}

// colorRed returns text wrapped in ANSI red color codes.
func colorRed(s string) string {
	if !isTerminal() {
		return s
	}
	return "\033[31m" + s + "\033[0m"
}

// isTerminal checks if stdout is a terminal.
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
