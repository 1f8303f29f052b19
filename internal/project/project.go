package project

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/toolsmith-labs/toolsmith/internal/userdata"
)

// WorkspaceFile is the optional per-workspace config at the workspace root.
const WorkspaceFile = "workspace.yaml"

// Default area directories relative to the workspace root.
const (
	DefaultWebDir    = "web"
	DefaultServerDir = "server"
	DefaultSharedDir = "shared"
	DefaultDocsDir   = "docs"
)

// Layout describes where the workspace keeps each area. All directories are
// relative to Root; the path helpers below return absolute paths.
type Layout struct {
	Root   string `yaml:"-"`
	Web    string `yaml:"web"`
	Server string `yaml:"server"`
	Shared string `yaml:"shared"`
	Docs   string `yaml:"docs"`
}

type workspaceConfig struct {
	Layout Layout `yaml:"layout"`
}

// DefaultLayout returns the conventional layout rooted at root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:   root,
		Web:    DefaultWebDir,
		Server: DefaultServerDir,
		Shared: DefaultSharedDir,
		Docs:   DefaultDocsDir,
	}
}

// Load reads workspace.yaml from the root when present and overlays it on
// the default layout. A missing file is not an error; the defaults apply.
func Load(root string) (Layout, error) {
	layout := DefaultLayout(root)

	path := filepath.Join(root, WorkspaceFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout, nil
		}
		return Layout{}, fmt.Errorf("reading workspace config %s: %w", path, err)
	}

	var config workspaceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Layout{}, fmt.Errorf("parsing workspace config %s: %w", path, err)
	}

	if config.Layout.Web != "" {
		layout.Web = config.Layout.Web
	}
	if config.Layout.Server != "" {
		layout.Server = config.Layout.Server
	}
	if config.Layout.Shared != "" {
		layout.Shared = config.Layout.Shared
	}
	if config.Layout.Docs != "" {
		layout.Docs = config.Layout.Docs
	}
	return layout, nil
}

// Init writes a workspace.yaml with the default layout at the root.
func Init(root string) (Layout, error) {
	layout := DefaultLayout(root)

	data, err := yaml.Marshal(workspaceConfig{Layout: layout})
	if err != nil {
		return Layout{}, fmt.Errorf("marshaling workspace config: %w", err)
	}

	path := filepath.Join(root, WorkspaceFile)
	if err := os.MkdirAll(root, userdata.DirPermNormal); err != nil {
		return Layout{}, fmt.Errorf("creating workspace root %s: %w", root, err)
	}
	if err := os.WriteFile(path, data, userdata.FilePermNormal); err != nil {
		return Layout{}, fmt.Errorf("writing workspace config %s: %w", path, err)
	}
	return layout, nil
}

// FrontendToolDir returns the directory that holds a tool's frontend files.
func (l Layout) FrontendToolDir(identifier string) string {
	return filepath.Join(l.Root, l.Web, "src", "tools", identifier)
}

// ServerRoleDir returns the backend directory for a role such as
// "controllers" or "services".
func (l Layout) ServerRoleDir(role string) string {
	return filepath.Join(l.Root, l.Server, "src", role)
}

// ServerEntryPath returns the server bootstrap file that mounts routes.
func (l Layout) ServerEntryPath() string {
	return filepath.Join(l.Root, l.Server, "src", "server.ts")
}

// SharedTypesDir returns the shared-package directory for type definitions.
func (l Layout) SharedTypesDir() string {
	return filepath.Join(l.Root, l.Shared, "src", "types")
}

// SharedIndexPath returns the shared-package barrel file.
func (l Layout) SharedIndexPath() string {
	return filepath.Join(l.Root, l.Shared, "src", "index.ts")
}

// DocsToolsDir returns the directory for per-tool documentation pages.
func (l Layout) DocsToolsDir() string {
	return filepath.Join(l.Root, l.Docs, "tools")
}
