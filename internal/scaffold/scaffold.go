package scaffold

import (
	"fmt"

	"github.com/toolsmith-labs/toolsmith/internal/fsys"
	"github.com/toolsmith-labs/toolsmith/internal/manifest"
	"github.com/toolsmith-labs/toolsmith/internal/patch"
	"github.com/toolsmith-labs/toolsmith/internal/project"
	"github.com/toolsmith-labs/toolsmith/internal/report"
	"github.com/toolsmith-labs/toolsmith/internal/templates"
	"github.com/toolsmith-labs/toolsmith/internal/tool"
	"github.com/toolsmith-labs/toolsmith/internal/userdata"
)

// Policy decides what happens when manifest paths already exist.
type Policy int

const (
	// PolicyAbort stops before any write when a conflict exists.
	PolicyAbort Policy = iota
	// PolicyForce overwrites without scanning.
	PolicyForce
	// PolicySkipExisting writes only the paths that do not exist yet.
	PolicySkipExisting
)

// Result describes what a generation run did to the workspace.
type Result struct {
	Root         string
	FilesCreated []string
	DirsCreated  []string
	FilesSkipped []string
	Warnings     []string
}

// Generator runs the scaffolding pipeline against a file system.
type Generator struct {
	fs       fsys.FS
	engine   *templates.Engine
	reporter report.Reporter
}

// NewGenerator wires a pipeline. A nil reporter discards progress events.
func NewGenerator(fs fsys.FS, engine *templates.Engine, reporter report.Reporter) *Generator {
	if reporter == nil {
		reporter = report.Discard{}
	}
	return &Generator{fs: fs, engine: engine, reporter: reporter}
}

// Generate scaffolds the tool described by meta into the workspace. The
// stages run strictly in order: validate, build manifest, scan conflicts,
// render all templates, create directories, write files, patch aggregators.
// Aggregator failures degrade to warnings; every earlier failure aborts,
// and a failure after the first write leaves already-written files in place.
func (g *Generator) Generate(meta *tool.Metadata, layout project.Layout, policy Policy) (*Result, error) {
	tool.Normalize(meta)
	if err := tool.Validate(meta); err != nil {
		return nil, err
	}

	man, err := manifest.Build(meta, layout)
	if err != nil {
		return nil, err
	}

	// One read-only scan; the per-file skip decisions reuse it.
	var existing map[string]bool
	if policy != PolicyForce {
		if policy == PolicyAbort {
			if conflicts := scanConflicts(g.fs, man); len(conflicts) > 0 {
				return nil, &ConflictError{Paths: conflicts}
			}
		}
		existing = conflictSet(g.fs, man)
	}

	// Render everything before writing anything.
	ctx := buildContext(meta)
	contents := make([][]byte, len(man.Files))
	for i, f := range man.Files {
		out, err := g.engine.RenderNamed(f.Template, ctx)
		if err != nil {
			return nil, err
		}
		contents[i] = []byte(out)
	}

	result := &Result{Root: man.Root}

	for _, dir := range man.Dirs {
		existed := g.fs.Exists(dir)
		if err := g.fs.MkdirAll(dir, userdata.DirPermNormal); err != nil {
			return nil, err
		}
		if !existed {
			result.DirsCreated = append(result.DirsCreated, dir)
			g.reporter.DirectoryCreated(dir)
		}
	}

	for i, f := range man.Files {
		if policy == PolicySkipExisting && existing[f.Path] {
			result.FilesSkipped = append(result.FilesSkipped, f.Path)
			g.reporter.Warningf("skipped %s: file already exists (re-run with --force to overwrite)", f.Path)
			continue
		}
		if err := g.fs.WriteFile(f.Path, contents[i], userdata.FilePermNormal); err != nil {
			return nil, err
		}
		if err := g.fs.Chmod(f.Path, userdata.FilePermNormal); err != nil {
			return nil, err
		}
		result.FilesCreated = append(result.FilesCreated, f.Path)
		g.reporter.FileWritten(f.Path, int64(len(contents[i])))
	}

	// Aggregator patching is best-effort per file: a failed target never
	// aborts the run or undoes earlier patches.
	for _, edit := range patch.Targets(meta, layout) {
		if _, err := patch.Apply(g.fs, edit); err != nil {
			warning := fmt.Sprintf("patching %s: %v", edit.Path, err)
			result.Warnings = append(result.Warnings, warning)
			g.reporter.Warningf("%s", warning)
		}
	}

	return result, nil
}
