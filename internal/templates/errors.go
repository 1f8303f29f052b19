package templates

import (
	"fmt"
	"strings"
)

// Kind classifies template failures so callers can react without parsing
// message text.
type Kind int

// Template failure kinds.
const (
	KindNotFound Kind = iota
	KindPermission
	KindSyntax
	KindMissingVariable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission"
	case KindSyntax:
		return "syntax"
	case KindMissingVariable:
		return "missing variable"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the engine. Every rendering problem
// maps to exactly one Kind; the remaining fields carry kind-specific detail.
type Error struct {
	Kind Kind
	Name string // template name

	Dir      string   // override directory searched (KindNotFound)
	Line     int      // 0 when unknown (KindSyntax)
	Variable string   // undefined variable (KindMissingVariable)
	Supplied []string // context keys that were supplied (KindMissingVariable)

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		if e.Dir != "" {
			return fmt.Sprintf("template %q not found: checked %s and the built-in set", e.Name, e.Dir)
		}
		return fmt.Sprintf("template %q not found in the built-in set", e.Name)
	case KindPermission:
		return fmt.Sprintf("template %q is not readable: %v", e.Name, e.Err)
	case KindSyntax:
		if e.Line > 0 {
			return fmt.Sprintf("template %q has a syntax error on line %d: %v", e.Name, e.Line, e.Err)
		}
		return fmt.Sprintf("template %q has a syntax error: %v", e.Name, e.Err)
	case KindMissingVariable:
		if len(e.Supplied) > 0 {
			return fmt.Sprintf("template %q references undefined variable %q (supplied: %s)",
				e.Name, e.Variable, strings.Join(e.Supplied, ", "))
		}
		return fmt.Sprintf("template %q references undefined variable %q", e.Name, e.Variable)
	default:
		return fmt.Sprintf("template %q: %v", e.Name, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }
