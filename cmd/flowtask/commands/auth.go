package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flowtask/cmd/flowtask/output"
	"flowtask/internal/model"
	"flowtask/internal/session"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long: `Authenticate against the FlowTask backend.

The session is carried by an HTTP cookie held in memory for the lifetime of
the process. Registering does not sign you in: new accounts must verify
their email address before the first login.

Examples:
  # Sign in
  flowtask auth login --email me@example.com

  # Register a new account
  flowtask auth register --email me@example.com --name "Jane Doe"

  # Show the signed-in user
  flowtask auth whoami

  # Sign out
  flowtask auth logout`,
}

// authLoginCmd signs in with email and password
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptPassword("Password: "); err != nil {
				return err
			}
		}

		if err := container.Session.Login(getContext(), email, password); err != nil {
			return err
		}

		user := container.Session.User()
		printer.Success("Signed in as %s", user.Email)
		return nil
	},
}

// authRegisterCmd creates a new account
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account. On success you are NOT signed in; check your
inbox for the verification email, then run "flowtask auth login".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		fullName, _ := cmd.Flags().GetString("name")

		var err error
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = promptPassword("Password: "); err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}
		}

		if err := container.Session.Register(getContext(), email, password, fullName); err != nil {
			return err
		}

		printer.Success("Account created for %s", email)
		printer.Info("Check your inbox for a verification email before signing in.")
		return nil
	},
}

// authLogoutCmd signs out
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		container.Session.Logout(getContext())
		printer.Success("Signed out")
		return nil
	},
}

// authWhoamiCmd shows the signed-in user
var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		container.Session.Refresh(getContext())
		if container.Session.State() != session.StateAuthenticated {
			return model.ErrNotAuthenticated
		}

		user := container.Session.User()
		if formatter.Format() != output.FormatText {
			return formatter.Print(user)
		}

		name := user.Email
		if user.FullName != nil && *user.FullName != "" {
			name = fmt.Sprintf("%s <%s>", *user.FullName, user.Email)
		}
		printer.Println("%s", name)
		if !user.IsVerified {
			printer.Warning("Email not verified")
		}
		return nil
	},
}

// authGithubCmd completes a GitHub OAuth login
var authGithubCmd = &cobra.Command{
	Use:   "github <code>",
	Short: "Complete a GitHub OAuth login",
	Long: `Complete the GitHub OAuth flow by exchanging the authorization code
the provider handed back. The backend sets the session cookie on success.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := container.Session.CompleteGitHubLogin(getContext(), args[0]); err != nil {
			return err
		}
		user := container.Session.User()
		printer.Success("Signed in as %s", user.Email)
		return nil
	},
}

func promptLine(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password (prompted if omitted)")

	authRegisterCmd.Flags().String("email", "", "account email")
	authRegisterCmd.Flags().String("password", "", "account password (prompted if omitted)")
	authRegisterCmd.Flags().String("name", "", "full name")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	authCmd.AddCommand(authGithubCmd)
	rootCmd.AddCommand(authCmd)
}
