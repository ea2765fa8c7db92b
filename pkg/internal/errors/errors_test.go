package errors

import (
	"errors"
	"testing"
)

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name     string
		d        Diagnostic
		expected string
	}{
		{"with line", Diagnostic{Line: 3, Message: "unclosed string at line 3"}, "line 3: unclosed string at line 3"},
		{"no line", Diagnostic{Message: "no valid JSON found"}, "no valid JSON found"},
		{"negative line", Diagnostic{Line: -1, Message: "x"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDiagnostics_Error(t *testing.T) {
	tests := []struct {
		name     string
		ds       Diagnostics
		expected string
	}{
		{"empty", Diagnostics{}, "diagnostics: (none)"},
		{"single", Diagnostics{{Message: "a"}}, "a"},
		{
			"multiple",
			Diagnostics{
				{Line: 2, Message: "a"},
				{Message: "b"},
			},
			"diagnostics (2): line 2: a; b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ds.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDiagnostics_Unwrap(t *testing.T) {
	ds := Diagnostics{{Message: "a"}, {Message: "b"}}
	if got := len(ds.Unwrap()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}

	var target Diagnostic
	if !errors.As(ds, &target) || target.Message != "a" {
		t.Errorf("errors.As should find the first diagnostic, got %+v", target)
	}
}

func TestDiagnostics_Has(t *testing.T) {
	ds := Diagnostics{{Kind: ErrorTypeParse}, {Kind: ErrorTypeCorruptLine, Line: 2}}
	if !ds.Has(ErrorTypeCorruptLine) {
		t.Error("expected corrupt_line")
	}
	if ds.Has(ErrorTypeRepaired) {
		t.Error("unexpected repaired")
	}
}

func TestDiagnostics_Lines(t *testing.T) {
	ds := Diagnostics{{Line: 4}, {}, {Line: 2}, {Line: 4}}
	got := ds.Lines()
	if len(got) != 2 || got[0] != 4 || got[1] != 2 {
		t.Errorf("Lines() = %v, want [4 2]", got)
	}
}

func TestSizeLimitError_Is(t *testing.T) {
	var err error = &SizeLimitError{Length: 11, Limit: 10}
	if !errors.Is(err, ErrSizeLimitExceeded) {
		t.Error("errors.Is should match ErrSizeLimitExceeded")
	}
	if got, want := err.Error(), "input exceeds size limit: 11 characters (max 10)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var sle *SizeLimitError
	if !errors.As(err, &sle) || sle.Limit != 10 {
		t.Errorf("errors.As failed: %+v", sle)
	}
}
