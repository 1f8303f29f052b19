package tool

import (
	"errors"
	"strings"
	"testing"
)

func validMetadata() *Metadata {
	return &Metadata{
		Identifier:  "inventory-tracker",
		DisplayName: "Inventory Tracker",
		Description: "Tracks inventory levels across warehouses.",
		Icon:        "clipboard",
		Version:     "1.0.0",
		Permissions: []string{"admin", "editor"},
		Features:    []string{FeatureComponent, FeatureAPI, FeatureStorage},
	}
}

func TestValidate_Valid(t *testing.T) {
	m := validMetadata()
	if err := Validate(m); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestValidate_IdentifierRules(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantValid  bool
	}{
		{"simple", "report", true},
		{"hyphenated", "data-export", true},
		{"digits", "export2csv", true},
		{"max length", strings.Repeat("a", 50), true},
		{"min length", "ab", true},
		{"empty", "", false},
		{"single char", "a", false},
		{"too long", strings.Repeat("a", 51), false},
		{"uppercase", "DataExport", false},
		{"mixed case", "dataExport", false},
		{"leading digit", "2fast", false},
		{"leading hyphen", "-tool", false},
		{"trailing hyphen", "tool-", false},
		{"underscore", "data_export", false},
		{"space", "data export", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMetadata()
			m.Identifier = tt.identifier
			err := Validate(m)
			if tt.wantValid && err != nil {
				t.Errorf("Validate() with identifier %q: unexpected error: %v", tt.identifier, err)
			}
			if !tt.wantValid && err == nil {
				t.Errorf("Validate() with identifier %q: expected error, got nil", tt.identifier)
			}
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	m := &Metadata{
		Identifier:  "Bad_Name",
		DisplayName: "ab",
		Description: "short",
		Icon:        "",
		Version:     "not-a-version",
		Permissions: nil,
		Features:    []string{"unknown"},
	}

	err := Validate(m)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	// One violation per broken field, all reported in a single pass.
	wantFields := []string{"identifier", "display_name", "description", "icon", "version", "permissions", "features"}
	for _, field := range wantFields {
		found := false
		for _, issue := range verr.Issues {
			if issue.Field == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a violation for field %q, issues: %v", field, verr.Issues)
		}
	}
}

func TestValidate_DisplayNameBounds(t *testing.T) {
	tests := []struct {
		name      string
		display   string
		wantValid bool
	}{
		{"min", "abc", true},
		{"max", strings.Repeat("x", 50), true},
		{"too short", "ab", false},
		{"too long", strings.Repeat("x", 51), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMetadata()
			m.DisplayName = tt.display
			err := Validate(m)
			if tt.wantValid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate_DescriptionOptional(t *testing.T) {
	m := validMetadata()
	m.Description = ""
	if err := Validate(m); err != nil {
		t.Errorf("empty description should be valid: %v", err)
	}

	m.Description = "too short"
	if err := Validate(m); err == nil {
		t.Error("9-character description should be invalid")
	}

	m.Description = strings.Repeat("d", 501)
	if err := Validate(m); err == nil {
		t.Error("501-character description should be invalid")
	}
}

func TestValidate_Version(t *testing.T) {
	tests := []struct {
		version   string
		wantValid bool
	}{
		{"1.0.0", true},
		{"0.2.1", true},
		{"2.0.0-beta.1", true},
		{"1.0", false},
		{"v1.0.0", false},
		{"latest", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			m := validMetadata()
			m.Version = tt.version
			err := Validate(m)
			if tt.wantValid && err != nil {
				t.Errorf("version %q: unexpected error: %v", tt.version, err)
			}
			if !tt.wantValid && err == nil {
				t.Errorf("version %q: expected error, got nil", tt.version)
			}
		})
	}
}

func TestValidate_EmptyPermissions(t *testing.T) {
	m := validMetadata()
	m.Permissions = []string{}
	err := Validate(m)
	if err == nil {
		t.Fatal("expected error for empty permissions")
	}
	if !strings.Contains(err.Error(), "permission") {
		t.Errorf("error should mention permissions: %v", err)
	}
}

func TestValidate_UnknownFeature(t *testing.T) {
	m := validMetadata()
	m.Features = []string{"component", "dashboard"}
	err := Validate(m)
	if err == nil {
		t.Fatal("expected error for unknown feature")
	}
	if !strings.Contains(err.Error(), "dashboard") {
		t.Errorf("error should name the unknown feature: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	m := &Metadata{
		Identifier:  "  report  ",
		DisplayName: " Report ",
		Description: "  Generates weekly reports.  ",
		Icon:        " chart ",
		Version:     "",
	}
	Normalize(m)

	if m.Identifier != "report" {
		t.Errorf("Identifier = %q, want %q", m.Identifier, "report")
	}
	if m.DisplayName != "Report" {
		t.Errorf("DisplayName = %q, want %q", m.DisplayName, "Report")
	}
	if m.Version != DefaultVersion {
		t.Errorf("Version = %q, want default %q", m.Version, DefaultVersion)
	}
	if m.Icon != "chart" {
		t.Errorf("Icon = %q, want %q", m.Icon, "chart")
	}
}

func TestDerivedPaths(t *testing.T) {
	m := &Metadata{Identifier: "data-export"}
	if got := m.Route(); got != "/tools/data-export" {
		t.Errorf("Route() = %q, want /tools/data-export", got)
	}
	if got := m.APIBasePath(); got != "/api/tools/data-export" {
		t.Errorf("APIBasePath() = %q, want /api/tools/data-export", got)
	}
}

func TestHasFeature(t *testing.T) {
	m := validMetadata()
	if !m.HasFeature(FeatureAPI) {
		t.Error("expected HasFeature(api) to be true")
	}
	if m.HasFeature(FeatureDocs) {
		t.Error("expected HasFeature(docs) to be false")
	}
}
