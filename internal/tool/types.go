package tool

// Feature constants for the metadata features field.
const (
	FeatureComponent = "component"
	FeatureAPI       = "api"
	FeatureStorage   = "storage"
	FeatureDocs      = "docs"
)

// ValidFeatures contains all valid feature values.
var ValidFeatures = []string{
	FeatureComponent,
	FeatureAPI,
	FeatureStorage,
	FeatureDocs,
}

// DefaultVersion is applied when the version field is left empty.
const DefaultVersion = "1.0.0"

// Metadata describes a tool module to scaffold and register.
type Metadata struct {
	Identifier  string   `yaml:"identifier" json:"identifier"`
	DisplayName string   `yaml:"display_name" json:"displayName"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Icon        string   `yaml:"icon" json:"icon"`
	Version     string   `yaml:"version,omitempty" json:"version"`
	Permissions []string `yaml:"permissions" json:"permissions"`
	Features    []string `yaml:"features" json:"features"`
}

// Route returns the frontend route derived from the identifier.
// Derived values are never stored; they are recomputed wherever needed.
func (m *Metadata) Route() string {
	return "/tools/" + m.Identifier
}

// APIBasePath returns the backend API mount path derived from the identifier.
func (m *Metadata) APIBasePath() string {
	return "/api/tools/" + m.Identifier
}

// HasFeature reports whether the metadata declares the given feature.
func (m *Metadata) HasFeature(feature string) bool {
	for _, f := range m.Features {
		if f == feature {
			return true
		}
	}
	return false
}
