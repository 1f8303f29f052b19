package scaffold

import "github.com/toolsmith-labs/toolsmith/internal/tool"

// buildContext assembles the template variable context from metadata. Every
// derived value is recomputed here from the identifier; nothing is cached
// between runs.
func buildContext(meta *tool.Metadata) map[string]any {
	return map[string]any{
		"Identifier":   meta.Identifier,
		"DisplayName":  meta.DisplayName,
		"Description":  meta.Description,
		"Icon":         meta.Icon,
		"Version":      meta.Version,
		"TypeName":     tool.TypeName(meta.Identifier),
		"MemberName":   tool.MemberName(meta.Identifier),
		"TableName":    tool.TableName(meta.Identifier),
		"Route":        meta.Route(),
		"APIBasePath":  meta.APIBasePath(),
		"Permissions":  meta.Permissions,
		"HasComponent": meta.HasFeature(tool.FeatureComponent),
		"HasAPI":       meta.HasFeature(tool.FeatureAPI),
		"HasStorage":   meta.HasFeature(tool.FeatureStorage),
		"HasDocs":      meta.HasFeature(tool.FeatureDocs),
	}
}
