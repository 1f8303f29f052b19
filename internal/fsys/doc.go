// Package fsys defines the file-system port used by the generation pipeline
// and its disk-backed implementation. Wrapping the handful of operations the
// pipeline needs keeps generation testable against a temp directory and
// keeps path context on every error.
package fsys
