package jsonparse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError describes where and why strict parsing failed.
type ParseError struct {
	// Offset is the byte offset of the offending character
	Offset int

	// Line and Column are 1-based; Column counts characters, not bytes
	Line   int
	Column int

	// Path is the JSON path of the value being parsed, e.g. "items[2].name"
	Path string

	// Reason is a human-readable description
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	if e.Path != "" {
		loc += " (at " + e.Path + ")"
	}
	return loc + ": " + e.Reason
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	offset := min(p.pos, len(p.data))
	line, column := position(p.data, offset)
	return &ParseError{
		Offset: offset,
		Line:   line,
		Column: column,
		Path:   JoinPath(p.path),
		Reason: fmt.Sprintf(format, args...),
	}
}

// position converts a byte offset into a 1-based line and column.
func position(text string, offset int) (line, column int) {
	before := text[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column = utf8.RuneCountInString(before[lineStart:]) + 1
	return line, column
}
