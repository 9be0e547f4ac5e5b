package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	stopPIDFile string
	stopForce   bool
	stopTimeout int
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running userd server",
	Long: `Stop a running userd server.

Finds the server through its PID file and asks it to shut down gracefully.
With --force the process is killed outright.`,
	Example: `  userd stop
  userd stop --force`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
	stopCmd.Flags().StringVar(&stopPIDFile, "pid-file", DefaultPIDPath(), "Path to PID file")
	stopCmd.Flags().BoolVarP(&stopForce, "force", "f", false, "Kill the process instead of asking it to stop")
	stopCmd.Flags().IntVar(&stopTimeout, "timeout", 10, "Seconds to wait for the server to exit")
}

func runStop(_ *cobra.Command, _ []string) error {
	pf, err := ReadPIDFile(stopPIDFile)
	if err != nil {
		return fmt.Errorf("userd is not running (no PID file found at %s)", stopPIDFile)
	}

	if !pf.IsRunning() {
		// Stale PID file - clean it up
		_ = RemovePIDFile(stopPIDFile)
		return errors.New("userd is not running (stale PID file removed)")
	}

	process, err := os.FindProcess(pf.PID)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pf.PID, err)
	}

	sig := signalTerm
	sigName := signalTermName()
	if stopForce {
		sig = signalKill
		sigName = signalKillName()
	}

	fmt.Printf("Stopping userd (PID %d) with %s... ", pf.PID, sigName)

	if err := process.Signal(sig); err != nil {
		fmt.Println("failed")
		return fmt.Errorf("failed to send signal: %w", err)
	}

	// SIGKILL doesn't get a graceful wait
	if stopForce {
		fmt.Println("done")
		time.Sleep(100 * time.Millisecond)
		_ = RemovePIDFile(stopPIDFile)
		return nil
	}

	deadline := time.Now().Add(time.Duration(stopTimeout) * time.Second)
	for time.Now().Before(deadline) {
		if !checkProcessRunning(pf.PID) {
			fmt.Println("done")
			// The server removes its own PID file on a clean shutdown;
			// clean up here in case it didn't get that far.
			_ = RemovePIDFile(stopPIDFile)
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	fmt.Println("timeout")
	return fmt.Errorf("userd (PID %d) did not stop within %ds\n\nTry: userd stop --force", pf.PID, stopTimeout)
}
