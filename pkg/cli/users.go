package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/cli/internal/output"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	usersCreateName  string
	usersCreateEmail string
	usersUpdateName  string
	usersUpdateEmail string
)

// usersCmd is the parent command for user record operations.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user records on a running server",
	Long: `Manage user records on a running userd server.

These commands talk to the server over its HTTP API, so the server must be
running (userd serve). The target server is http://localhost:8080 unless
--url or USERD_URL says otherwise.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Example: `  # List users as a table
  userd users list

  # List users as JSON
  userd users list --json`,
	Args: cobra.NoArgs,
	RunE: runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a user by id",
	Example: `  userd users get 1
  userd users get 1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersGet,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Long: `Create a user on the server.

With --name (and optionally --email) the user is created directly. With no
flags on a terminal, an interactive form prompts for the fields.`,
	Example: `  # Create directly
  userd users create --name Alice --email alice@example.com

  # Prompt for the fields
  userd users create`,
	Args: cobra.NoArgs,
	RunE: runUsersCreate,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Long: `Update a user's name and email.

The server replaces both fields, so pass the full desired state. A flag you
omit is filled in from the user's current value first.`,
	Example: `  # Change just the email, keeping the name
  userd users update 1 --email alice@corp.example.com

  # Replace both fields
  userd users update 1 --name "Alice Smith" --email alice@corp.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersUpdate,
}

var usersDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a user",
	Example: `  userd users delete 1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runUsersDelete,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersCreateCmd.Flags().StringVar(&usersCreateName, "name", "", "User's name")
	usersCreateCmd.Flags().StringVar(&usersCreateEmail, "email", "", "User's email address")

	usersUpdateCmd.Flags().StringVar(&usersUpdateName, "name", "", "New name")
	usersUpdateCmd.Flags().StringVar(&usersUpdateEmail, "email", "", "New email address")
}

// newAPIClient creates a client for the configured server URL.
func newAPIClient() Client {
	return NewClient(serverURL)
}

// parseUserID parses a positional id argument.
func parseUserID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: must be an integer", arg)
	}
	return id, nil
}

func runUsersList(_ *cobra.Command, _ []string) error {
	client := newAPIClient()

	users, err := client.ListUsers()
	if err != nil {
		return formatClientError(err)
	}

	return printResult(users, func() {
		if len(users) == 0 {
			fmt.Println("No users yet. Create one with: userd users create")
			return
		}
		w := output.Table()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
		}
		w.Flush()
	})
}

func runUsersGet(_ *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client := newAPIClient()
	user, err := client.GetUser(id)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%s", FormatNotFoundError(id))
		}
		return formatClientError(err)
	}

	return printResult(user, func() {
		fmt.Printf("ID:     %d\n", user.ID)
		fmt.Printf("Name:   %s\n", user.Name)
		fmt.Printf("Email:  %s\n", user.Email)
	})
}

func runUsersCreate(cmd *cobra.Command, _ []string) error {
	name := usersCreateName
	email := usersCreateEmail

	// No flags on a terminal means the user wants to be prompted.
	if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("email") && isTerminal() {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Placeholder("Alice").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("name is required")
						}
						return nil
					}),
				huh.NewInput().
					Title("Email").
					Placeholder("alice@example.com").
					Value(&email),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("--name is required")
	}

	client := newAPIClient()
	user, err := client.CreateUser(name, email)
	if err != nil {
		return formatClientError(err)
	}

	return printResult(user, func() {
		fmt.Printf("Created user %d (%s)\n", user.ID, user.Name)
	})
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("email") {
		return fmt.Errorf("nothing to update: pass --name and/or --email")
	}

	client := newAPIClient()

	name := usersUpdateName
	email := usersUpdateEmail

	// The API replaces the whole record. Backfill the field the caller
	// left out so a single-flag update doesn't blank the other one.
	if !cmd.Flags().Changed("name") || !cmd.Flags().Changed("email") {
		current, err := client.GetUser(id)
		if err != nil {
			if IsNotFound(err) {
				return fmt.Errorf("%s", FormatNotFoundError(id))
			}
			return formatClientError(err)
		}
		if !cmd.Flags().Changed("name") {
			name = current.Name
		}
		if !cmd.Flags().Changed("email") {
			email = current.Email
		}
	}

	user, err := client.UpdateUser(id, name, email)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%s", FormatNotFoundError(id))
		}
		return formatClientError(err)
	}

	return printResult(user, func() {
		fmt.Printf("Updated user %d\n", user.ID)
	})
}

func runUsersDelete(_ *cobra.Command, args []string) error {
	id, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	client := newAPIClient()
	if err := client.DeleteUser(id); err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("%s", FormatNotFoundError(id))
		}
		return formatClientError(err)
	}

	result := map[string]any{"deleted": true, "id": id}
	return printResult(result, func() {
		fmt.Printf("Deleted user %d\n", id)
	})
}

// formatClientError turns connection failures into actionable messages.
func formatClientError(err error) error {
	if apiErr, ok := err.(*APIError); ok && apiErr.ErrorCode == "connection_error" {
		return fmt.Errorf("%s", FormatConnectionError(apiErr))
	}
	return err
}
