package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toolsmith-labs/toolsmith/internal/project"
	"github.com/toolsmith-labs/toolsmith/internal/tool"
)

// Area labels where a generated file belongs in the workspace.
type Area string

// Workspace areas.
const (
	AreaFrontend Area = "frontend"
	AreaBackend  Area = "backend"
	AreaShared   Area = "shared"
	AreaConfig   Area = "config"
)

// File pairs an absolute output path with the template that renders it.
type File struct {
	Path     string
	Template string
	Area     Area
}

// Manifest lists everything a tool module adds to the workspace.
type Manifest struct {
	Root string

	// FrontendDir is the tool's own frontend directory, empty when the
	// component feature is off. The conflict scan probes it as a whole.
	FrontendDir string

	// Dirs are the directories to ensure, parents before children.
	Dirs []string

	// Files are the files to write, in a fixed area order.
	Files []File
}

// Backend roles that receive one file each. The suffix is the file name
// part after the identifier, e.g. data-export.routes.ts.
var backendRoles = []struct {
	role     string
	suffix   string
	template string
	feature  string
}{
	{"controllers", "controller", "controller.ts.tmpl", tool.FeatureAPI},
	{"services", "service", "service.ts.tmpl", tool.FeatureAPI},
	{"validators", "validator", "validator.ts.tmpl", tool.FeatureAPI},
	{"routes", "routes", "routes.ts.tmpl", tool.FeatureAPI},
	{"repositories", "repository", "repository.ts.tmpl", tool.FeatureStorage},
}

// Build computes the manifest for the given metadata and workspace layout.
// It performs no file-system access. Every path is verified to stay inside
// the workspace root; identifiers that pass validation cannot escape it, but
// the manifest does not rely on that.
func Build(meta *tool.Metadata, layout project.Layout) (*Manifest, error) {
	id := meta.Identifier
	m := &Manifest{Root: layout.Root}

	addDir := func(dir string) {
		for _, d := range m.Dirs {
			if d == dir {
				return
			}
		}
		m.Dirs = append(m.Dirs, dir)
	}
	addFile := func(dir, name, template string, area Area) {
		addDir(dir)
		m.Files = append(m.Files, File{
			Path:     filepath.Join(dir, name),
			Template: template,
			Area:     area,
		})
	}

	if meta.HasFeature(tool.FeatureComponent) {
		dir := layout.FrontendToolDir(id)
		m.FrontendDir = dir
		addFile(dir, id+".component.tsx", "component.tsx.tmpl", AreaFrontend)
		addFile(dir, id+".module.css", "component.css.tmpl", AreaFrontend)
		addFile(dir, "index.ts", "component-index.ts.tmpl", AreaFrontend)
	}

	for _, r := range backendRoles {
		if !meta.HasFeature(r.feature) {
			continue
		}
		addFile(layout.ServerRoleDir(r.role), id+"."+r.suffix+".ts", r.template, AreaBackend)
	}

	// The shared type definition is always generated.
	addFile(layout.SharedTypesDir(), id+".types.ts", "types.ts.tmpl", AreaShared)

	if meta.HasFeature(tool.FeatureDocs) {
		addFile(layout.DocsToolsDir(), id+".md", "docs.md.tmpl", AreaConfig)
	}

	for _, dir := range m.Dirs {
		if !withinRoot(layout.Root, dir) {
			return nil, fmt.Errorf("manifest directory %s escapes workspace root %s", dir, layout.Root)
		}
	}
	for _, f := range m.Files {
		if !withinRoot(layout.Root, f.Path) {
			return nil, fmt.Errorf("manifest path %s escapes workspace root %s", f.Path, layout.Root)
		}
	}

	return m, nil
}

// Paths returns the file paths in manifest order.
func (m *Manifest) Paths() []string {
	paths := make([]string, len(m.Files))
	for i, f := range m.Files {
		paths[i] = f.Path
	}
	return paths
}

// withinRoot reports whether path is root itself or a descendant of it.
func withinRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
