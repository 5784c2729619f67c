// Package errs defines the error taxonomy shared by the tariff tools. Every
// failure that aborts a run is one of these types (possibly wrapped), so the
// binaries can report a consistent message and callers can branch with
// errors.As.
package errs

import (
	"fmt"
	"strings"
)

// ParseError reports a field value that could not be interpreted, such as a
// malformed date or a secret payload that is not valid JSON.
type ParseError struct {
	Row    int // 1-based data row; 0 when not row-scoped
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("parse")
	if e.Row > 0 {
		fmt.Fprintf(&sb, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&sb, " column %s", e.Column)
	}
	if e.Value != "" {
		fmt.Fprintf(&sb, " value %q", e.Value)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports an input table whose header does not satisfy the
// expected schema.
type SchemaError struct {
	Missing []string
	Reason  string
}

func (e *SchemaError) Error() string {
	switch {
	case len(e.Missing) > 0 && e.Reason != "":
		return fmt.Sprintf("schema: %s: missing columns %s", e.Reason, strings.Join(e.Missing, ", "))
	case len(e.Missing) > 0:
		return "schema: missing columns " + strings.Join(e.Missing, ", ")
	default:
		return "schema: " + e.Reason
	}
}

// IOError reports an unreadable input or unwritable output.
type IOError struct {
	Op   string // "open", "read", "write", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("io %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("io %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// SecretNotFoundError reports a failed lookup against the secrets provider.
type SecretNotFoundError struct {
	Name string
	Err  error
}

func (e *SecretNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("secret %q not found", e.Name)
	}
	return fmt.Sprintf("secret %q not found: %v", e.Name, e.Err)
}

func (e *SecretNotFoundError) Unwrap() error { return e.Err }
