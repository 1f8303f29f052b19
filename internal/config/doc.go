// Package config manages user-level settings stored at ~/.toolsmith/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the registry base URL and the stored account email.
package config
