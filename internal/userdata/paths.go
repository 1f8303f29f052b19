package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toolsmith-labs/toolsmith/internal/branding"
)

// File and directory names under the per-user home directory.
const (
	RegistrationsFile = "registrations.json"
	TemplatesDir      = "templates"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// GetHomeRoot returns the per-user toolsmith directory.
// It checks the TOOLSMITH_HOME environment variable first,
// then falls back to ~/.toolsmith.
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetRegistrationsPath returns the path to the registration history file.
// It checks the TOOLSMITH_REGISTRATIONS environment variable first,
// then falls back to ~/.toolsmith/registrations.json.
func GetRegistrationsPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("REGISTRATIONS")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, RegistrationsFile), nil
}

// GetTemplatesDir returns the user-local template override directory.
// It checks the TOOLSMITH_TEMPLATES environment variable first,
// then falls back to ~/.toolsmith/templates.
func GetTemplatesDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("TEMPLATES")); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, TemplatesDir), nil
}
