package ot

import (
	"errors"
	"fmt"
)

// Error conditions of font decoding. Clients should test for them with errors.Is,
// as the errors returned by this package wrap them with additional context.
var (
	// ErrOutOfBounds is returned for any read beyond the end of a byte segment.
	ErrOutOfBounds = errors.New("read out of bounds")
	// ErrTruncatedHeader means the font is shorter than its 12-byte offset table.
	ErrTruncatedHeader = errors.New("truncated font header")
	// ErrTruncatedDirectory means the font ends before its last table record.
	ErrTruncatedDirectory = errors.New("truncated table directory")
	// ErrFontCollection is returned for TrueType collections, which are not supported.
	ErrFontCollection = errors.New("font collections are not supported")
	// ErrTableBounds means a table record points outside of the font's data.
	ErrTableBounds = errors.New("table extends beyond end of font")
	// ErrTableTooShort means a table is shorter than its fixed header.
	ErrTableTooShort = errors.New("table too short")
	// ErrUnknownFormat flags a sub-table of unrecognized format or version.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUndecodable flags text which cannot be decoded under its nominal encoding.
	ErrUndecodable = errors.New("undecodable text")
)

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

func errTooShort(tag Tag, have, need int) error {
	return fmt.Errorf("%w: '%s' has %d bytes, need at least %d", ErrTableTooShort, tag, have, need)
}

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error that makes the whole font unreadable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a table which could not be decoded.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered during font decoding.
// It wraps the underlying cause, which may be inspected with errors.Is.
type FontError struct {
	Table    Tag           // The table where the error occurred (e.g., "cmap", "OS/2")
	Section  string        // Specific section within the table (e.g., "Header", "Subtable")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font file where the error occurred (0 if unknown)
	Cause    error         // Underlying error, may be nil
}

// Error implements the error interface.
func (e FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table.Printable(), e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table.Printable(), e.Section, e.Issue)
}

// Unwrap returns the underlying cause of e.
func (e FontError) Unwrap() error {
	return e.Cause
}

// FontWarning represents a non-critical issue encountered during font decoding.
// Warnings indicate potential problems but never stop decoding.
type FontWarning struct {
	Table  Tag    // The table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table.Printable(), w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table.Printable(), w.Issue)
}

// errorCollector accumulates errors and warnings during font parsing.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

// addError records a parsing error.
func (ec *errorCollector) addError(table Tag, section string, cause error, severity ErrorSeverity, offset uint32) {
	ec.errors = append(ec.errors, FontError{
		Table:    table,
		Section:  section,
		Issue:    cause.Error(),
		Severity: severity,
		Offset:   offset,
		Cause:    cause,
	})
}

// addWarning records a parsing warning.
func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// hasErrors returns true if any errors have been recorded.
func (ec *errorCollector) hasErrors() bool {
	return len(ec.errors) > 0
}

// criticalError returns the first error with critical severity, or nil.
func (ec *errorCollector) criticalError() error {
	for _, err := range ec.errors {
		if err.Severity == SeverityCritical {
			return err
		}
	}
	return nil
}
