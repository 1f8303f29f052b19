// Package project resolves the host workspace layout: where the web app,
// API server, shared package, and docs live relative to the workspace root.
// An optional workspace.yaml at the root overrides the conventional
// directory names.
package project
