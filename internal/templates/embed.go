package templates

import "embed"

// assetFS holds the built-in template set. User overrides in
// ~/.toolsmith/templates take precedence at load time.
//
//go:embed assets
var assetFS embed.FS
