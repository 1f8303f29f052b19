package patch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toolsmith-labs/toolsmith/internal/fsys"
	"github.com/toolsmith-labs/toolsmith/internal/project"
	"github.com/toolsmith-labs/toolsmith/internal/tool"
	"github.com/toolsmith-labs/toolsmith/internal/userdata"
)

// Edit describes one idempotent aggregator modification: a statement that
// must occur exactly once in the target file, with optional import and
// anchor handling for the server bootstrap.
type Edit struct {
	// Path is the aggregator file. A missing file is treated as empty
	// and created on write.
	Path string

	// Statement is the line to ensure. When it already occurs verbatim
	// anywhere in the file, the edit is a no-op.
	Statement string

	// Import, when set, is inserted alphabetically among the file's
	// import lines unless already present.
	Import string

	// Sentinel anchors the statement: it is inserted immediately before
	// the first line starting with this text. Fallback is tried when the
	// sentinel is absent; with neither found the statement is appended.
	Sentinel string
	Fallback string
}

// Anchor lines in the server bootstrap file. New route mounts go before the
// not-found handler so they stay reachable.
const (
	serverSentinel = "app.use(notFoundHandler"
	serverFallback = "export default app"
)

// Aggregated backend roles, in patch order.
var barrelRoles = []struct {
	dir     string
	suffix  string
	feature string
}{
	{"controllers", "controller", tool.FeatureAPI},
	{"services", "service", tool.FeatureAPI},
	{"validators", "validator", tool.FeatureAPI},
	{"routes", "routes", tool.FeatureAPI},
	{"repositories", "repository", tool.FeatureStorage},
}

// Targets returns the fixed set of aggregator edits for the metadata, in a
// deterministic order. Which edits appear depends only on the feature set.
func Targets(meta *tool.Metadata, layout project.Layout) []Edit {
	id := meta.Identifier
	member := tool.MemberName(id)

	var edits []Edit
	for _, r := range barrelRoles {
		if !meta.HasFeature(r.feature) {
			continue
		}
		edits = append(edits, Edit{
			Path:      filepath.Join(layout.ServerRoleDir(r.dir), "index.ts"),
			Statement: fmt.Sprintf("export * from './%s.%s';", id, r.suffix),
		})
	}

	if meta.HasFeature(tool.FeatureAPI) {
		edits = append(edits, Edit{
			Path:      layout.ServerEntryPath(),
			Statement: fmt.Sprintf("app.use('%s', %sRoutes);", meta.APIBasePath(), member),
			Import:    fmt.Sprintf("import { %sRoutes } from './routes/%s.routes';", member, id),
			Sentinel:  serverSentinel,
			Fallback:  serverFallback,
		})
	}

	// The shared barrel re-exports the tool's types unconditionally,
	// mirroring the always-generated types file.
	edits = append(edits, Edit{
		Path:      layout.SharedIndexPath(),
		Statement: fmt.Sprintf("export * from './types/%s.types';", id),
	})

	return edits
}

// Apply performs a single edit. It reports whether the file changed. Running
// the same edit twice leaves the file byte-identical to the first run.
func Apply(fs fsys.FS, e Edit) (bool, error) {
	var content string
	if fs.Exists(e.Path) {
		data, err := fs.ReadFile(e.Path)
		if err != nil {
			return false, err
		}
		content = string(data)
	}

	if strings.Contains(content, e.Statement) {
		return false, nil
	}

	updated := content
	if e.Import != "" && !strings.Contains(updated, e.Import) {
		updated = insertImport(updated, e.Import)
	}
	if e.Sentinel != "" {
		updated = insertBeforeAnchor(updated, e.Statement, e.Sentinel, e.Fallback)
	} else {
		updated = appendLine(updated, e.Statement)
	}

	if err := fs.WriteFile(e.Path, []byte(updated), userdata.FilePermNormal); err != nil {
		return false, err
	}
	return true, nil
}

// insertImport places an import line alphabetically within the file's import
// block: before the first import that sorts after it, or after the last
// import. A file without imports gets it at the top.
func insertImport(content, imp string) string {
	lines := strings.Split(content, "\n")

	lastImport := -1
	insertAt := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import ") {
			continue
		}
		lastImport = i
		if insertAt == -1 && trimmed > imp {
			insertAt = i
		}
	}

	switch {
	case lastImport == -1:
		insertAt = 0
	case insertAt == -1:
		insertAt = lastImport + 1
	}

	lines = append(lines[:insertAt], append([]string{imp}, lines[insertAt:]...)...)
	return strings.Join(lines, "\n")
}

// insertBeforeAnchor inserts the statement immediately before the first line
// starting with sentinel, matching that line's indentation. The fallback
// anchor is tried next; with neither present the statement is appended.
func insertBeforeAnchor(content, statement, sentinel, fallback string) string {
	for _, anchor := range []string{sentinel, fallback} {
		if anchor == "" {
			continue
		}
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if !strings.HasPrefix(strings.TrimSpace(line), anchor) {
				continue
			}
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			lines = append(lines[:i], append([]string{indent + statement}, lines[i:]...)...)
			return strings.Join(lines, "\n")
		}
	}
	return appendLine(content, statement)
}

// appendLine appends the statement as its own line, keeping a trailing
// newline on the file.
func appendLine(content, statement string) string {
	if content == "" {
		return statement + "\n"
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + statement + "\n"
}
