// Package scaffold orchestrates tool generation: validate metadata, build
// the manifest, scan for conflicts, render every template, write files, and
// patch the workspace aggregators. Rendering completes for all files before
// the first write, so a template failure never leaves a partial tool behind.
package scaffold
