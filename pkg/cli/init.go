package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/config"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// starterConfig is the commented template written by userd init.
const starterConfig = `# userd configuration
#
# Values here override the built-in defaults. USERD_* environment
# variables override this file, and command-line flags override both.

server:
  # Interface to bind. Empty means all interfaces.
  host: ""
  # HTTP port to listen on.
  port: 8080

logging:
  # debug, info, warn, or error.
  level: info
  # text or json.
  format: text

# Users created at startup, in order, with ids 1..N.
seed:
  - name: Alice
    email: alice@example.com
  - name: Bob
    email: bob@example.com

# Extra seed files (YAML lists of name/email records). Globs work,
# including ** for recursive matches.
# seedFiles:
#   - seeds/*.yaml
`

var (
	initForce       bool
	initOutput      string
	initFormat      string
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	Long: `Create a starter configuration file in the current directory.

By default a commented userd.yaml template is written. With --interactive
the values are collected through prompts instead.`,
	Example: `  # Write the commented template to userd.yaml
  userd init

  # Answer prompts and write only what you chose
  userd init --interactive

  # JSON instead of YAML
  userd init --output userd.json --format json`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "userd.yaml", "Where to write the config file")
	initCmd.Flags().StringVar(&initFormat, "format", "yaml", "Config format (yaml, json)")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for configuration values")
}

func runInit(_ *cobra.Command, _ []string) error {
	if initFormat != "yaml" && initFormat != "json" {
		return fmt.Errorf("unsupported format %q: use yaml or json", initFormat)
	}

	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	var data []byte
	if initInteractive {
		cfg, err := promptForConfig()
		if err != nil {
			return err
		}
		data, err = renderConfig(cfg, initFormat)
		if err != nil {
			return err
		}
	} else if initFormat == "json" {
		cfg, err := config.ParseYAML([]byte(starterConfig))
		if err != nil {
			return err
		}
		data, err = config.ToJSON(cfg)
		if err != nil {
			return err
		}
	} else {
		data = []byte(starterConfig)
	}

	if err := os.WriteFile(initOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", initOutput, err)
	}

	fmt.Printf("Created %s\n", initOutput)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Edit %s to taste\n", initOutput)
	fmt.Printf("  2. Start the server: userd serve --config %s\n", initOutput)
	return nil
}

// promptForConfig collects config values interactively. It builds a
// minimal Config so the rendered file contains only the chosen values.
func promptForConfig() (*config.Config, error) {
	host := ""
	port := strconv.Itoa(config.DefaultPort)
	logLevel := config.DefaultLogLevel
	seedExamples := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Host").
				Description("Interface to bind (empty = all interfaces)").
				Placeholder("localhost").
				Value(&host),
			huh.NewInput().
				Title("Port").
				Placeholder(strconv.Itoa(config.DefaultPort)).
				Value(&port).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > 65535 {
						return fmt.Errorf("port must be 1-65535")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("debug", "debug"),
					huh.NewOption("info", "info"),
					huh.NewOption("warn", "warn"),
					huh.NewOption("error", "error"),
				).
				Value(&logLevel),
			huh.NewConfirm().
				Title("Seed example users?").
				Value(&seedExamples),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	portNum, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil {
		return nil, fmt.Errorf("invalid port %q", port)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host: strings.TrimSpace(host),
			Port: portNum,
		},
		Logging: config.LoggingConfig{
			Level: logLevel,
		},
	}
	if seedExamples {
		cfg.Seed = []userstore.Seed{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
		}
	}
	return cfg, nil
}

// renderConfig serializes cfg in the requested format, with a short
// header comment for YAML output.
func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	if format == "json" {
		return config.ToJSON(cfg)
	}
	body, err := config.ToYAML(cfg)
	if err != nil {
		return nil, err
	}
	header := "# userd configuration\n# Generated by: userd init --interactive\n\n"
	return append([]byte(header), body...), nil
}
