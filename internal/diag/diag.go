// Package diag defines the diagnostic model shared by the lexer and driver.
//
// The formatting core itself never reports: malformed structure degrades to
// independent per-branch formatting instead of raising errors. Only the lexer
// produces diagnostics (unterminated comments/strings, unknown bytes), and the
// CLI renders them.
package diag

import (
	"burnish/internal/source"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Code is a compact numeric identifier with a stable string form.
type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	// IO
	IOLoadFileError Code = 2001
)

// Diagnostic is a single finding attached to a source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
}
