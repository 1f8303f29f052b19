package registry

import (
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/toolsmith-labs/toolsmith/internal/branding"
	"github.com/toolsmith-labs/toolsmith/internal/config"
)

// ResolveCredentials returns the email/password pair to authenticate
// with. Explicit values win, then the config file, then the OS keyring
// entry for the resolved email. Missing credentials fail fast so the
// operator is told what to set instead of watching a doomed login.
func ResolveCredentials(email, password string) (string, string, error) {
	if email == "" {
		email = config.Get(config.KeyRegistryEmail)
	}
	if email == "" {
		return "", "", fmt.Errorf("no registry email: pass --email or run '%s login'", branding.CLIName())
	}

	if password == "" {
		password = config.Get(config.KeyRegistryPassword)
	}
	if password == "" {
		if stored, err := keyring.Get(branding.KeyringService(), email); err == nil {
			password = stored
		}
	}
	if password == "" {
		return "", "", fmt.Errorf("no registry password for %s: pass --password or run '%s login'", email, branding.CLIName())
	}

	return email, password, nil
}

// SaveCredentials stores the email in the config file and the password
// in the OS keyring. The email is written even when the keyring is
// unavailable so the next login only has to ask for the password.
func SaveCredentials(email, password string) error {
	if err := config.Set(config.KeyRegistryEmail, email); err != nil {
		return err
	}
	if err := keyring.Set(branding.KeyringService(), email, password); err != nil {
		return fmt.Errorf("storing password in system keyring: %w", err)
	}
	return nil
}
