package ot

import (
	"errors"
	"fmt"
	"testing"
)

// TestErrorSeverity verifies the ErrorSeverity String() method.
func TestErrorSeverity(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{ErrorSeverity(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.severity.String()
		if result != tt.expected {
			t.Errorf("ErrorSeverity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

// TestFontError verifies FontError formatting.
func TestFontError(t *testing.T) {
	tests := []struct {
		name     string
		err      FontError
		expected string
	}{
		{
			name: "Error with offset",
			err: FontError{
				Table:    T("cmap"),
				Section:  "Decode",
				Issue:    "Buffer too small",
				Severity: SeverityMajor,
				Offset:   1234,
			},
			expected: "[MAJOR] cmap/Decode at offset 1234: Buffer too small",
		},
		{
			name: "Error without offset",
			err: FontError{
				Table:    T("OS/2"),
				Section:  "Bounds",
				Issue:    "table extends beyond end of font",
				Severity: SeverityMajor,
			},
			expected: "[MAJOR] OS/2/Bounds: table extends beyond end of font",
		},
		{
			name: "Critical error",
			err: FontError{
				Section:  "Header",
				Issue:    "truncated font header",
				Severity: SeverityCritical,
			},
			expected: `[CRITICAL] \x00\x00\x00\x00/Header: truncated font header`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("FontError.Error() = %q; want %q", result, tt.expected)
			}
		})
	}
}

func TestFontErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("%w: 4 bytes at offset 10", ErrOutOfBounds)
	err := error(FontError{Table: T("head"), Section: "Decode", Cause: cause})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected FontError to wrap ErrOutOfBounds")
	}
	var ferr FontError
	if !errors.As(fmt.Errorf("context: %w", err), &ferr) || ferr.Table != T("head") {
		t.Errorf("expected wrapped FontError to be found by errors.As")
	}
}

// TestFontWarning verifies FontWarning formatting.
func TestFontWarning(t *testing.T) {
	tests := []struct {
		name     string
		warning  FontWarning
		expected string
	}{
		{
			name: "Warning with offset",
			warning: FontWarning{
				Table:  T("kern"),
				Issue:  "table offset is not 4-byte aligned",
				Offset: 5678,
			},
			expected: "[WARNING] kern at offset 5678: table offset is not 4-byte aligned",
		},
		{
			name: "Warning without offset",
			warning: FontWarning{
				Table: T("post"),
				Issue: "unknown version 0x00050000, header only",
			},
			expected: "[WARNING] post: unknown version 0x00050000, header only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.warning.String()
			if result != tt.expected {
				t.Errorf("FontWarning.String() = %q; want %q", result, tt.expected)
			}
		})
	}
}

// TestErrorCollector verifies the errorCollector helper type.
func TestErrorCollector(t *testing.T) {
	ec := &errorCollector{}
	if ec.hasErrors() {
		t.Error("errorCollector should not have errors initially")
	}
	if ec.criticalError() != nil {
		t.Error("errorCollector should not have a critical error initially")
	}
	ec.addError(T("cmap"), "Test", errors.New("minor issue"), SeverityMinor, 100)
	if !ec.hasErrors() {
		t.Error("errorCollector should have errors after adding one")
	}
	if ec.criticalError() != nil {
		t.Error("errorCollector should not have a critical error yet")
	}
	ec.addError(T(""), "Header", ErrTruncatedHeader, SeverityCritical, 0)
	err := ec.criticalError()
	if err == nil || !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("expected critical error wrapping ErrTruncatedHeader, got %v", err)
	}
	ec.addWarning(T("kern"), "Warning issue", 400)
	if len(ec.warnings) != 1 || ec.warnings[0].Offset != 400 {
		t.Errorf("errorCollector should have 1 warning at offset 400; got %v", ec.warnings)
	}
}
