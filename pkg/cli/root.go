package cli

import (
	"fmt"
	"os"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	serverURL  string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "userd",
	Short: "userd is a small in-memory user record service",
	Long: `userd serves a REST API for user records, backed by an in-memory store.

Run a server with 'userd serve', then manage records from another terminal
with 'userd users list', 'userd users create', and friends.

Configuration can be provided via flags, USERD_* environment variables, or a
userd.yaml configuration file in the working directory.`,
	// No Run function here means 'userd' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute runs the root command. It is called by main.main() and only
// needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultServerURL resolves the base URL client commands talk to:
// USERD_URL when set, the default port otherwise.
func defaultServerURL() string {
	if url := config.URLFromEnv(); url != "" {
		return url
	}
	return fmt.Sprintf("http://localhost:%d", config.DefaultPort)
}

func init() {
	// Define persistent flags that apply globally to all userd commands
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", defaultServerURL(), "Server base URL (default: http://localhost:8080)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
