package tool

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadFile reads a tool metadata YAML file, validates the document against
// the embedded JSON schema, and returns the normalized metadata. Field-level
// rules that the schema cannot express (semver, description minimum) are
// still enforced separately by Validate.
func LoadFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file %s: %w", path, err)
	}

	result, err := ValidateDocument(data)
	if err != nil {
		return nil, fmt.Errorf("validating metadata file %s: %w", path, err)
	}
	if !result.Valid {
		var b strings.Builder
		fmt.Fprintf(&b, "metadata file %s failed schema validation:", path)
		for _, issue := range result.Issues {
			fmt.Fprintf(&b, "\n  %s: %s", issue.Path, issue.Message)
		}
		return nil, fmt.Errorf("%s", b.String())
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing metadata file %s: %w", path, err)
	}

	Normalize(&m)
	return &m, nil
}
