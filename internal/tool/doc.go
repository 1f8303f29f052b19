// Package tool defines the tool metadata record that drives scaffolding and
// registration. It provides field validation that reports every violation at
// once, naming transforms between the identifier's casing variants, and
// JSON Schema validation for metadata supplied as a YAML file.
package tool
