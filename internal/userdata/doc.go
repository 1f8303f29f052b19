// Package userdata resolves per-user toolsmith paths such as the
// ~/.toolsmith home directory, the registration history file, and the
// template override directory. Every path honors a TOOLSMITH_* environment
// override so tests and CI can relocate state.
package userdata
