package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toolsmith-labs/toolsmith/internal/fsys"
	"github.com/toolsmith-labs/toolsmith/internal/project"
	"github.com/toolsmith-labs/toolsmith/internal/templates"
	"github.com/toolsmith-labs/toolsmith/internal/tool"
)

type recordingReporter struct {
	dirs     []string
	files    []string
	warnings []string
	errs     []string
}

func (r *recordingReporter) DirectoryCreated(path string) { r.dirs = append(r.dirs, path) }
func (r *recordingReporter) FileWritten(path string, _ int64) {
	r.files = append(r.files, path)
}
func (r *recordingReporter) Warningf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
func (r *recordingReporter) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func testMetadata() *tool.Metadata {
	return &tool.Metadata{
		Identifier:  "inventory-tracker",
		DisplayName: "Inventory Tracker",
		Description: "Tracks inventory levels across warehouses.",
		Icon:        "clipboard",
		Version:     "1.0.0",
		Permissions: []string{"admin", "editor"},
		Features:    []string{tool.FeatureComponent, tool.FeatureAPI, tool.FeatureStorage, tool.FeatureDocs},
	}
}

func newTestGenerator(rep *recordingReporter) *Generator {
	if rep == nil {
		return NewGenerator(fsys.NewDisk(), templates.New(), nil)
	}
	return NewGenerator(fsys.NewDisk(), templates.New(), rep)
}

func TestGenerate_FullRun(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	rep := &recordingReporter{}
	g := newTestGenerator(rep)

	result, err := g.Generate(testMetadata(), layout, PolicyAbort)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if len(result.FilesCreated) != 10 {
		t.Errorf("FilesCreated = %d, want 10: %v", len(result.FilesCreated), result.FilesCreated)
	}
	if len(result.FilesSkipped) != 0 {
		t.Errorf("FilesSkipped = %v, want none", result.FilesSkipped)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}

	// Spot-check generated contents.
	component, err := os.ReadFile(filepath.Join(root, "web", "src", "tools", "inventory-tracker", "inventory-tracker.component.tsx"))
	if err != nil {
		t.Fatalf("component not written: %v", err)
	}
	if !strings.Contains(string(component), "InventoryTrackerPage") {
		t.Error("component missing derived type name")
	}
	if !strings.Contains(string(component), "/api/tools/inventory-tracker") {
		t.Error("component missing derived API base path")
	}

	repo, err := os.ReadFile(filepath.Join(root, "server", "src", "repositories", "inventory-tracker.repository.ts"))
	if err != nil {
		t.Fatalf("repository not written: %v", err)
	}
	if !strings.Contains(string(repo), "'inventory_tracker'") {
		t.Error("repository missing storage table name")
	}

	// Aggregators were created and wired.
	barrel, err := os.ReadFile(filepath.Join(root, "server", "src", "controllers", "index.ts"))
	if err != nil {
		t.Fatalf("controllers barrel not created: %v", err)
	}
	if string(barrel) != "export * from './inventory-tracker.controller';\n" {
		t.Errorf("controllers barrel = %q", barrel)
	}

	server, err := os.ReadFile(filepath.Join(root, "server", "src", "server.ts"))
	if err != nil {
		t.Fatalf("server bootstrap not created: %v", err)
	}
	if !strings.Contains(string(server), "import { inventoryTrackerRoutes } from './routes/inventory-tracker.routes';") {
		t.Errorf("server bootstrap missing import:\n%s", server)
	}
	if !strings.Contains(string(server), "app.use('/api/tools/inventory-tracker', inventoryTrackerRoutes);") {
		t.Errorf("server bootstrap missing route mount:\n%s", server)
	}

	shared, err := os.ReadFile(filepath.Join(root, "shared", "src", "index.ts"))
	if err != nil {
		t.Fatalf("shared barrel not created: %v", err)
	}
	if !strings.Contains(string(shared), "export * from './types/inventory-tracker.types';") {
		t.Errorf("shared barrel = %q", shared)
	}

	if len(rep.dirs) == 0 || len(rep.files) != 10 {
		t.Errorf("reporter saw %d dirs and %d files", len(rep.dirs), len(rep.files))
	}
}

func TestGenerate_SecondRunConflicts(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	g := newTestGenerator(nil)

	if _, err := g.Generate(testMetadata(), layout, PolicyAbort); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	_, err := g.Generate(testMetadata(), layout, PolicyAbort)
	if err == nil {
		t.Fatal("second run should conflict")
	}

	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *ConflictError, got %T: %v", err, err)
	}
	if len(cerr.Paths) == 0 {
		t.Fatal("conflict error carries no paths")
	}
	// The frontend directory leads the list.
	wantDir := filepath.Join(root, "web", "src", "tools", "inventory-tracker")
	if cerr.Paths[0] != wantDir {
		t.Errorf("Paths[0] = %q, want frontend dir %q", cerr.Paths[0], wantDir)
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("conflict message should point at --force: %v", err)
	}
}

func TestGenerate_AbortWritesNothing(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	g := newTestGenerator(nil)

	// Pre-create one colliding file.
	typesPath := filepath.Join(root, "shared", "src", "types", "inventory-tracker.types.ts")
	if err := os.MkdirAll(filepath.Dir(typesPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(typesPath, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := g.Generate(testMetadata(), layout, PolicyAbort)
	if err == nil {
		t.Fatal("expected conflict error")
	}

	// The colliding file is untouched and nothing else appeared.
	data, _ := os.ReadFile(typesPath)
	if string(data) != "original" {
		t.Errorf("colliding file was modified: %q", data)
	}
	if _, statErr := os.Stat(filepath.Join(root, "web")); !os.IsNotExist(statErr) {
		t.Error("web directory should not exist after an aborted run")
	}
}

func TestGenerate_SkipExisting(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	rep := &recordingReporter{}
	g := newTestGenerator(rep)

	if _, err := g.Generate(testMetadata(), layout, PolicyAbort); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	// Mark one file so we can prove it survives.
	marker := filepath.Join(root, "shared", "src", "types", "inventory-tracker.types.ts")
	if err := os.WriteFile(marker, []byte("hand edited"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := g.Generate(testMetadata(), layout, PolicySkipExisting)
	if err != nil {
		t.Fatalf("skip-existing Generate() error: %v", err)
	}
	if len(result.FilesCreated) != 0 {
		t.Errorf("FilesCreated = %v, want none on a fully existing tree", result.FilesCreated)
	}
	if len(result.FilesSkipped) != 10 {
		t.Errorf("FilesSkipped = %d, want 10", len(result.FilesSkipped))
	}

	data, _ := os.ReadFile(marker)
	if string(data) != "hand edited" {
		t.Errorf("skip-existing overwrote a file: %q", data)
	}
}

func TestGenerate_ForceOverwrites(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	g := newTestGenerator(nil)

	if _, err := g.Generate(testMetadata(), layout, PolicyAbort); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}

	marker := filepath.Join(root, "shared", "src", "types", "inventory-tracker.types.ts")
	if err := os.WriteFile(marker, []byte("hand edited"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := g.Generate(testMetadata(), layout, PolicyForce)
	if err != nil {
		t.Fatalf("force Generate() error: %v", err)
	}
	if len(result.FilesCreated) != 10 {
		t.Errorf("FilesCreated = %d, want 10", len(result.FilesCreated))
	}

	data, _ := os.ReadFile(marker)
	if string(data) == "hand edited" {
		t.Error("force run should overwrite the edited file")
	}
}

func TestGenerate_PatchingIsIdempotentAcrossRuns(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	g := newTestGenerator(nil)

	if _, err := g.Generate(testMetadata(), layout, PolicyAbort); err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	if _, err := g.Generate(testMetadata(), layout, PolicyForce); err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}

	server, _ := os.ReadFile(filepath.Join(root, "server", "src", "server.ts"))
	if n := strings.Count(string(server), "app.use('/api/tools/inventory-tracker'"); n != 1 {
		t.Errorf("route mount appears %d times, want exactly 1:\n%s", n, server)
	}

	shared, _ := os.ReadFile(filepath.Join(root, "shared", "src", "index.ts"))
	if n := strings.Count(string(shared), "export * from './types/inventory-tracker.types';"); n != 1 {
		t.Errorf("shared export appears %d times, want exactly 1:\n%s", n, shared)
	}
}

func TestGenerate_InvalidMetadata(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	g := newTestGenerator(nil)

	meta := testMetadata()
	meta.Permissions = nil

	_, err := g.Generate(meta, layout, PolicyAbort)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *tool.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *tool.ValidationError, got %T", err)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("workspace should stay empty after validation failure, found %v", entries)
	}
}

func TestGenerate_TemplateFailureWritesNothing(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)

	// Shadow one template with a reference to an undefined variable.
	override := t.TempDir()
	broken := "export const x = '{{.DoesNotExist}}';"
	if err := os.WriteFile(filepath.Join(override, "types.ts.tmpl"), []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(fsys.NewDisk(), templates.New(templates.WithOverrideDir(override)), nil)
	_, err := g.Generate(testMetadata(), layout, PolicyAbort)
	if err == nil {
		t.Fatal("expected template error")
	}

	var terr *templates.Error
	if !errors.As(err, &terr) {
		t.Fatalf("expected *templates.Error, got %T: %v", err, err)
	}
	if terr.Kind != templates.KindMissingVariable {
		t.Errorf("Kind = %v, want KindMissingVariable", terr.Kind)
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("workspace should stay empty after template failure, found %v", entries)
	}
}

// failingFS makes one path unwritable so patch degradation can be observed.
type failingFS struct {
	fsys.FS
	failPath string
}

func (f failingFS) WriteFile(path string, data []byte, mode os.FileMode) error {
	if path == f.failPath {
		return fmt.Errorf("writing file %s: %w", path, os.ErrPermission)
	}
	return f.FS.WriteFile(path, data, mode)
}

func TestGenerate_PatchFailureDegradesToWarning(t *testing.T) {
	root := t.TempDir()
	layout := project.DefaultLayout(root)
	rep := &recordingReporter{}

	blocked := layout.SharedIndexPath()
	g := NewGenerator(failingFS{FS: fsys.NewDisk(), failPath: blocked}, templates.New(), rep)

	result, err := g.Generate(testMetadata(), layout, PolicyAbort)
	if err != nil {
		t.Fatalf("Generate() should succeed despite a patch failure: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], blocked) {
		t.Errorf("warning should name the failed aggregator: %q", result.Warnings[0])
	}
	if len(rep.warnings) == 0 {
		t.Error("reporter should have seen the warning")
	}

	// Other aggregators were still patched.
	barrel, readErr := os.ReadFile(filepath.Join(root, "server", "src", "controllers", "index.ts"))
	if readErr != nil {
		t.Fatalf("controllers barrel missing: %v", readErr)
	}
	if !strings.Contains(string(barrel), "inventory-tracker.controller") {
		t.Errorf("controllers barrel not patched: %q", barrel)
	}
}
