package scaffold

import (
	"fmt"
	"strings"

	"github.com/toolsmith-labs/toolsmith/internal/fsys"
	"github.com/toolsmith-labs/toolsmith/internal/manifest"
)

// ConflictError reports every manifest path that already exists in the
// workspace. It is returned before anything is written.
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d path(s) already exist (re-run with --force to overwrite or --skip-existing to keep them):\n  %s",
		len(e.Paths), strings.Join(e.Paths, "\n  "))
}

// scanConflicts probes every manifest file path, plus the tool's frontend
// directory as a whole, without writing anything. The returned list keeps
// manifest order with the frontend directory first.
func scanConflicts(fs fsys.FS, m *manifest.Manifest) []string {
	var conflicts []string
	if m.FrontendDir != "" && fs.Exists(m.FrontendDir) {
		conflicts = append(conflicts, m.FrontendDir)
	}
	for _, f := range m.Files {
		if fs.Exists(f.Path) {
			conflicts = append(conflicts, f.Path)
		}
	}
	return conflicts
}

// conflictSet returns the existing manifest file paths as a set for
// per-file skip decisions.
func conflictSet(fs fsys.FS, m *manifest.Manifest) map[string]bool {
	existing := make(map[string]bool)
	for _, f := range m.Files {
		if fs.Exists(f.Path) {
			existing[f.Path] = true
		}
	}
	return existing
}
