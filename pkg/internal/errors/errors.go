// Package errors defines shared error and diagnostic types for jsonsalvage.
package errors

import (
	"fmt"
	"strings"
)

// ErrorType is an enum for recovery diagnostic categories.
type ErrorType string

// Error type constants.
const (
	ErrorTypeSizeLimit             ErrorType = "size_limit_exceeded"    // Input longer than the configured maximum
	ErrorTypeParse                 ErrorType = "parse_error"            // Strict parsing of the whole input failed
	ErrorTypeStructureUndetermined ErrorType = "structure_undetermined" // Input is not wrapped in a matching {} or [] pair
	ErrorTypeCorruptLine           ErrorType = "corrupt_line"           // A line was flagged during line classification
	ErrorTypeReconstructionFailed  ErrorType = "reconstruction_failed"  // Rebuilt document did not parse
	ErrorTypeFragmentExtracted     ErrorType = "fragment_extracted"     // Result is the largest embedded fragment
	ErrorTypeRepaired              ErrorType = "repaired"               // Result came from the repair stage
	ErrorTypeNoRecoverableJSON     ErrorType = "no_recoverable_json"    // Nothing could be recovered
)

// Diagnostic is one entry of a recovery log.
type Diagnostic struct {
	Line    int       `json:"line,omitempty"` // 1-based line number, 0 when not tied to a line
	Kind    ErrorType `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	if d.Line <= 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Diagnostics is an ordered slice of Diagnostic that implements error.
type Diagnostics []Diagnostic

// Error implements the error interface.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "diagnostics: (none)"
	}
	if len(ds) == 1 {
		return ds[0].Error()
	}
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Error())
	}
	return fmt.Sprintf("diagnostics (%d): %s", len(ds), strings.Join(msgs, "; "))
}

// Unwrap returns the diagnostics as a slice for errors.As/errors.Is compatibility.
func (ds Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}

// Has reports whether any diagnostic has the given kind.
func (ds Diagnostics) Has(kind ErrorType) bool {
	for _, d := range ds {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Lines returns the distinct line numbers mentioned, in first-seen order.
func (ds Diagnostics) Lines() []int {
	var lines []int
	seen := make(map[int]bool)
	for _, d := range ds {
		if d.Line > 0 && !seen[d.Line] {
			seen[d.Line] = true
			lines = append(lines, d.Line)
		}
	}
	return lines
}

type sentinel string

func (s sentinel) Error() string { return string(s) }

// ErrSizeLimitExceeded is matched by every SizeLimitError.
const ErrSizeLimitExceeded = sentinel("input exceeds size limit")

// SizeLimitError reports an input rejected by the size guard.
type SizeLimitError struct {
	Length int // Measured length in characters
	Limit  int // Configured maximum
}

// Error implements the error interface.
func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("%s: %d characters (max %d)", ErrSizeLimitExceeded, e.Length, e.Limit)
}

// Is makes errors.Is(err, ErrSizeLimitExceeded) succeed.
func (e *SizeLimitError) Is(target error) bool {
	return target == ErrSizeLimitExceeded
}
