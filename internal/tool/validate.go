package tool

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	permissionPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// Field length bounds.
const (
	identifierMinLen  = 2
	identifierMaxLen  = 50
	displayNameMinLen = 3
	displayNameMaxLen = 50
	descriptionMinLen = 10
	descriptionMaxLen = 500
)

// FieldError describes a single metadata field violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates every field violation found in a metadata
// record. Validation never stops at the first problem; callers get the
// complete list in one pass.
type ValidationError struct {
	Issues []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.Field + ": " + issue.Message
	}
	return "invalid tool metadata: " + strings.Join(parts, "; ")
}

// Normalize trims whitespace from text fields and applies the version
// default. Call it before Validate.
func Normalize(m *Metadata) {
	m.Identifier = strings.TrimSpace(m.Identifier)
	m.DisplayName = strings.TrimSpace(m.DisplayName)
	m.Description = strings.TrimSpace(m.Description)
	m.Icon = strings.TrimSpace(m.Icon)
	m.Version = strings.TrimSpace(m.Version)
	if m.Version == "" {
		m.Version = DefaultVersion
	}
}

// Validate checks every metadata field and returns nil or a
// *ValidationError carrying all violations.
func Validate(m *Metadata) error {
	var issues []FieldError
	add := func(field, format string, args ...any) {
		issues = append(issues, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch id := m.Identifier; {
	case id == "":
		add("identifier", "is required")
	case len(id) < identifierMinLen || len(id) > identifierMaxLen:
		add("identifier", "must be between %d and %d characters", identifierMinLen, identifierMaxLen)
	case !identifierPattern.MatchString(id):
		add("identifier", "must start with a lowercase letter and contain only lowercase letters, digits, and hyphens")
	case strings.HasSuffix(id, "-"):
		add("identifier", "must not end with a hyphen")
	}

	switch name := m.DisplayName; {
	case name == "":
		add("display_name", "is required")
	case len(name) < displayNameMinLen || len(name) > displayNameMaxLen:
		add("display_name", "must be between %d and %d characters", displayNameMinLen, displayNameMaxLen)
	}

	if d := m.Description; d != "" {
		if len(d) < descriptionMinLen || len(d) > descriptionMaxLen {
			add("description", "must be empty or between %d and %d characters", descriptionMinLen, descriptionMaxLen)
		}
	}

	if m.Icon == "" {
		add("icon", "is required")
	}

	if m.Version == "" {
		add("version", "is required")
	} else if _, err := semver.StrictNewVersion(m.Version); err != nil {
		add("version", "must be a semantic version like %q", DefaultVersion)
	}

	if len(m.Permissions) == 0 {
		add("permissions", "at least one permission is required")
	}
	for _, p := range m.Permissions {
		if !permissionPattern.MatchString(p) {
			add("permissions", "invalid permission %q: must be a lowercase slug", p)
		}
	}

	if len(m.Features) == 0 {
		add("features", "at least one feature is required")
	}
	for _, f := range m.Features {
		if !isValidFeature(f) {
			add("features", "unknown feature %q (valid: %s)", f, strings.Join(ValidFeatures, ", "))
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func isValidFeature(f string) bool {
	for _, v := range ValidFeatures {
		if f == v {
			return true
		}
	}
	return false
}
