// Package manifest computes the set of files and directories a tool module
// occupies in the host workspace. Building a manifest performs no I/O and is
// fully deterministic: identical metadata and layout always produce the same
// paths in the same order.
package manifest
