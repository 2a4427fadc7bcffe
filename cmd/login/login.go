// Package login implements the admin login and logout commands. A successful
// login persists the bearer token in the session store; every admin command
// picks it up from there.
package login

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/cmd/common"
	"github.com/vietjobs/jobradar-cli/internal/logger"
)

// Command returns the login command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate as an administrator",
		Long: `Login exchanges admin credentials for a bearer token and stores it
locally. The password is read from the --password flag, the
JOBRADAR_PASSWORD environment variable, or standard input.`,
		RunE: runLogin,
	}
	cmd.Flags().StringP("username", "u", "", "admin username")
	cmd.Flags().StringP("password", "p", "", "admin password (prefer JOBRADAR_PASSWORD or stdin)")
	if err := cmd.MarkFlagRequired("username"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking username flag as required: %v\n", err)
		os.Exit(1)
	}
	return cmd
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored admin session",
		RunE:  runLogout,
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	username := cmd.Flag("username").Value.String()
	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	resp, err := deps.Client.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := deps.Session.Login(resp.AccessToken, resp.ExpiresIn); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	deps.Logger.Info("admin session established",
		logger.String("username", username),
		logger.Int("expires_in_seconds", resp.ExpiresIn))
	fmt.Printf("Logged in as %s.\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	if err := deps.Session.Logout(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}

// resolvePassword checks the flag, then the environment, then reads one line
// from stdin.
func resolvePassword(cmd *cobra.Command) (string, error) {
	if flagValue := cmd.Flag("password").Value.String(); flagValue != "" {
		return flagValue, nil
	}
	if envValue := os.Getenv("JOBRADAR_PASSWORD"); envValue != "" {
		return envValue, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimSpace(line)
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}
