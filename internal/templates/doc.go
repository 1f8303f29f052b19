// Package templates renders the built-in file templates that make up a tool
// module. Templates are named text/template assets embedded in the binary;
// a per-user override directory can shadow any of them. Failures carry a
// typed Kind (not found, permission, syntax, missing variable) so the
// pipeline can report each cause precisely.
package templates
