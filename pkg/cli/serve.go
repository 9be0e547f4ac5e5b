package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/api"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/cli/internal/output"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/logging"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
	"github.com/spf13/cobra"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// serveFlags holds all parsed command-line flags for the serve command.
type serveFlags struct {
	host         string
	port         int
	configFile   string
	logLevel     string
	logFormat    string
	lokiEndpoint string
	seedPairs    []string
	quiet        bool
	pidFile      string
}

// serveCmd represents the serve command, the foreground server entrypoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the userd server (foreground)",
	Long: `Start the userd server.

Configuration is resolved from flags, USERD_* environment variables, and an
optional config file (--config, USERD_CONFIG, or a userd.yaml in the working
directory), in that order of precedence. Seed users from the config and from
--seed flags are created before the listener starts, so their ids are 1..N.`,
	Example: `  # Start with defaults on :8080
  userd serve

  # Start with a config file on a custom port
  userd serve --config userd.yaml --port 3000

  # Seed a few records without a config file
  userd serve --seed "Alice=alice@example.com" --seed "Bob=bob@example.com"

  # JSON logs for log shippers
  userd serve --log-format json

  # Ship logs to Loki as well
  userd serve --loki-endpoint http://localhost:3100`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServeWithFlags(cmd, &serveFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals

	serveCmd.Flags().StringVar(&f.host, "host", "", "Interface to bind (default: all interfaces)")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", 0, "HTTP server port (default: 8080)")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	serveCmd.Flags().StringVar(&f.lokiEndpoint, "loki-endpoint", "", "Loki endpoint for log aggregation")
	serveCmd.Flags().StringArrayVar(&f.seedPairs, "seed", nil, "Seed user as Name=email (repeatable)")
	serveCmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Suppress the startup banner")
	serveCmd.Flags().StringVar(&f.pidFile, "pid-file", DefaultPIDPath(), "Path to PID file (empty = no PID file)")
}

// runServeWithFlags is the core serve logic called by the cobra command.
func runServeWithFlags(cmd *cobra.Command, flags *serveFlags) error {
	cfg, err := buildServerConfig(cmd, flags)
	if err != nil {
		return err
	}

	log := buildLogger(cfg, flags)

	seeds, err := config.LoadSeeds(cfg)
	if err != nil {
		return fmt.Errorf("failed to load seed users: %w", err)
	}
	store := userstore.NewSeeded(seeds)

	srv := api.New(cfg,
		api.WithStore(store),
		api.WithVersion(Version),
	)
	srv.SetLogger(log.With("component", "api"))

	if err := srv.Start(); err != nil {
		if isAddrInUseError(err) {
			return fmt.Errorf("port %d is already in use — try a different port with --port or check what's using it: lsof -i :%d", cfg.Server.Port, cfg.Server.Port)
		}
		return fmt.Errorf("failed to start server: %w", err)
	}

	if flags.pidFile != "" {
		info := &PIDFile{
			PID:         os.Getpid(),
			StartTime:   time.Now(),
			Version:     Version,
			Host:        cfg.Server.Host,
			Port:        cfg.Server.Port,
			ConfigFile:  cfg.Path,
			UsersSeeded: len(seeds),
		}
		if err := WritePIDFile(flags.pidFile, info); err != nil {
			_ = srv.Stop()
			return fmt.Errorf("failed to write PID file: %w", err)
		}
	}

	// The banner targets humans; JSON log mode keeps stdout machine-parseable.
	if !flags.quiet && cfg.Logging.Format != "json" {
		printServeStartupMessage(cfg, store.Count())
	}

	return runMainLoop(srv, flags)
}

// buildServerConfig resolves the effective configuration: defaults, then
// file and environment via config.Load, then explicit flags on top.
func buildServerConfig(cmd *cobra.Command, f *serveFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	overlay := &config.Config{}
	if cmd.Flags().Changed("host") {
		overlay.Server.Host = f.host
	}
	if cmd.Flags().Changed("port") {
		overlay.Server.Port = f.port
	}
	if cmd.Flags().Changed("log-level") {
		overlay.Logging.Level = f.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		overlay.Logging.Format = f.logFormat
	}
	config.Merge(cfg, overlay, config.SourceFlag)

	seeds, err := parseSeedPairs(f.seedPairs)
	if err != nil {
		return nil, err
	}
	cfg.Seed = append(cfg.Seed, seeds...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLogger creates the structured logger, tee'd to Loki when an
// endpoint is configured.
func buildLogger(cfg *config.Config, flags *serveFlags) *slog.Logger {
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
	})

	if flags.lokiEndpoint != "" {
		lokiHandler := logging.NewLokiHandler(flags.lokiEndpoint,
			logging.WithLokiLabels(map[string]string{
				"service": "userd",
				"port":    strconv.Itoa(cfg.Server.Port),
			}),
			logging.WithLokiLevel(logging.ParseLevel(cfg.Logging.Level)),
		)
		log = slog.New(logging.NewMultiHandler(log.Handler(), lokiHandler))
		log.Info("log aggregation enabled", "endpoint", flags.lokiEndpoint)
	}

	return log
}

// parseSeedPairs parses repeated --seed values of the form "Name=email".
func parseSeedPairs(pairs []string) ([]userstore.Seed, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	seeds := make([]userstore.Seed, 0, len(pairs))
	for _, pair := range pairs {
		name, email, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --seed value %q: expected Name=email", pair)
		}
		seeds = append(seeds, userstore.Seed{
			Name:  strings.TrimSpace(name),
			Email: strings.TrimSpace(email),
		})
	}
	return seeds, nil
}

// isAddrInUseError reports whether err indicates the listen address is taken.
func isAddrInUseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}

// runMainLoop blocks until a shutdown signal arrives, then stops the
// server, waiting at most shutdownTimeout for the drain to finish.
func runMainLoop(srv *api.Server, flags *serveFlags) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	fmt.Println("\nShutting down...")

	if flags.pidFile != "" {
		if err := RemovePIDFile(flags.pidFile); err != nil {
			output.Warn("failed to remove PID file: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		if err := srv.Stop(); err != nil {
			output.Warn("server shutdown error: %v", err)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		output.Warn("shutdown timed out after %s", shutdownTimeout)
	}

	fmt.Println("Server stopped")
	return nil
}

// printServeStartupMessage prints the server startup information.
func printServeStartupMessage(cfg *config.Config, userCount int) {
	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	baseURL := fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)

	if userCount > 0 {
		fmt.Printf("userd server started (%d users seeded)\n", userCount)
	} else {
		fmt.Println("userd server started")
	}
	fmt.Println()
	fmt.Printf("  API:      %s/users\n", baseURL)
	fmt.Printf("  Health:   %s/health\n", baseURL)
	fmt.Printf("  Metrics:  %s/metrics\n", baseURL)
	if cfg.Path != "" {
		fmt.Printf("  Config:   %s\n", cfg.Path)
	}
	fmt.Println()

	if userCount == 0 {
		fmt.Println("No users yet. Quick start:")
		fmt.Println()
		fmt.Printf("  userd users create --name Alice --email alice@example.com\n")
		fmt.Printf("  curl %s/users\n", baseURL)
		fmt.Println()
	}

	fmt.Println("Press Ctrl+C to stop")
}
