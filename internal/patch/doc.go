// Package patch wires a freshly scaffolded tool into the workspace's
// aggregator files: the per-role backend barrels, the shared-package barrel,
// and the server bootstrap that mounts the tool's routes. Every edit is
// idempotent; re-running leaves already-patched files byte-identical.
package patch
