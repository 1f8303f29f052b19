// Package registry implements the client for the remote tool registry.
// It authenticates operators, pre-validates metadata against the server
// contract, submits registrations with exponential-backoff retry on
// transient failures, resolves credentials from flags, configuration,
// and the OS keyring, and keeps a local JSON history of registration
// outcomes per tool identifier.
package registry
