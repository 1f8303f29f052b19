// Package platform provides cross-platform filesystem operations. On Unix
// systems permission changes use chmod directly; on Windows they are no-ops
// because Windows has no Unix-style permission bits.
package platform
