package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

const assetsDir = "assets"

// Engine loads named templates from the built-in set (with an optional
// per-user override directory) and renders them with a variable context.
// Rendering is plain textual substitution: context values are inserted
// verbatim and never evaluated.
type Engine struct {
	overrideDir string
}

// Option configures an Engine.
type Option func(*Engine)

// WithOverrideDir makes the engine check dir for a template file before
// falling back to the built-in set.
func WithOverrideDir(dir string) Option {
	return func(e *Engine) {
		e.overrideDir = dir
	}
}

// New creates a template engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Names returns the built-in template names, sorted.
func (e *Engine) Names() []string {
	entries, err := fs.ReadDir(assetFS, assetsDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Load returns the raw text of the named template. The override directory
// wins when it holds a file of that name; an unreadable override is a
// permission error rather than a silent fallback.
func (e *Engine) Load(name string) (string, error) {
	if e.overrideDir != "" {
		path := filepath.Join(e.overrideDir, name)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			return string(data), nil
		case os.IsPermission(err):
			return "", &Error{Kind: KindPermission, Name: name, Err: err}
		case !os.IsNotExist(err):
			return "", fmt.Errorf("reading template override %s: %w", path, err)
		}
	}

	data, err := fs.ReadFile(assetFS, assetsDir+"/"+name)
	if err != nil {
		return "", &Error{Kind: KindNotFound, Name: name, Dir: e.overrideDir}
	}
	return string(data), nil
}

// Render parses and executes template text against the context. Undefined
// variable references fail with KindMissingVariable rather than rendering
// "<no value>".
func (e *Engine) Render(name, text string, ctx map[string]any) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", &Error{Kind: KindSyntax, Name: name, Line: parseErrorLine(name, err), Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		if variable, ok := missingKey(err); ok {
			return "", &Error{
				Kind:     KindMissingVariable,
				Name:     name,
				Variable: variable,
				Supplied: sortedKeys(ctx),
				Err:      err,
			}
		}
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderNamed loads the named template and renders it.
func (e *Engine) RenderNamed(name string, ctx map[string]any) (string, error) {
	text, err := e.Load(name)
	if err != nil {
		return "", err
	}
	return e.Render(name, text, ctx)
}

var missingKeyPattern = regexp.MustCompile(`map has no entry for key "([^"]+)"`)

// missingKey extracts the variable name from a missingkey=error execution
// failure.
func missingKey(err error) (string, bool) {
	m := missingKeyPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return "", false
	}
	return m[1], true
}

// parseErrorLine extracts the line number from a text/template parse error,
// which formats as `template: <name>:<line>: message`. Returns 0 when the
// error does not carry one.
func parseErrorLine(name string, err error) int {
	msg := err.Error()
	prefix := "template: " + name + ":"
	idx := strings.Index(msg, prefix)
	if idx < 0 {
		return 0
	}
	rest := msg[idx+len(prefix):]
	end := strings.IndexByte(rest, ':')
	if end < 0 {
		return 0
	}
	line, convErr := strconv.Atoi(rest[:end])
	if convErr != nil {
		return 0
	}
	return line
}

func sortedKeys(ctx map[string]any) []string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
