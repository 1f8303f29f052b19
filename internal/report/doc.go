// Package report defines the progress-reporting interface the generation
// pipeline emits events through, plus a colored console implementation.
package report
