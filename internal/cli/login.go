package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/toolsmith-labs/toolsmith/internal/config"
	"github.com/toolsmith-labs/toolsmith/internal/registry"
)

var loginEmail string

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Registry account email")
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store registry credentials",
	Long: `Verify registry credentials and store them locally. The email goes to
the config file, the password to the OS keyring. Later create and
register runs pick both up automatically.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := loginEmail
	if email == "" {
		email = config.Get(config.KeyRegistryEmail)
	}
	if email == "" {
		var err error
		email, err = readLine(cmd, "Email: ")
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}

	// Verify before storing so a typo doesn't poison the keyring.
	client := registry.NewClient(config.RegistryURL())
	if _, err := client.Authenticate(cmd.Context(), email, password); err != nil {
		return err
	}

	if err := registry.SaveCredentials(email, password); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Credentials stored.\n", email)
	return nil
}

func readLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo when stdin is a terminal and falls
// back to a plain line read so the command stays scriptable.
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
