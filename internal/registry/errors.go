package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Terminal registry failures. None of these are ever retried.
var (
	// ErrInvalidCredentials is returned when the registry rejects the
	// email/password pair (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked is returned when the account exists but may not
	// log in (HTTP 403). The message is the registry's own phrase so
	// operators can match it against the service's documentation.
	ErrAccountLocked = errors.New("Account locked")

	// ErrAlreadyRegistered is returned when a tool with the same
	// identifier already exists in the registry (HTTP 409).
	ErrAlreadyRegistered = errors.New("tool already registered")
)

// FieldIssue is one field-level rejection reported by the registry.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ServerValidationError is returned when the registry rejects a
// registration payload with HTTP 400. It carries every field issue the
// server reported.
type ServerValidationError struct {
	Issues []FieldIssue
}

func (e *ServerValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "registry rejected the registration"
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.Field + ": " + issue.Message
	}
	return "registry rejected the registration: " + strings.Join(parts, "; ")
}

// TransientError is returned after the retry budget is exhausted on
// network-level failures or 5xx responses. It wraps the last attempt's
// error.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("registry unreachable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// retryableError marks an attempt failure the retry loop may try again:
// a transport error or a 5xx response. Everything else is terminal.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// unwrapRetryable strips the retryable marker so callers see the
// underlying cause.
func unwrapRetryable(err error) error {
	var re *retryableError
	if errors.As(err, &re) {
		return re.err
	}
	return err
}
