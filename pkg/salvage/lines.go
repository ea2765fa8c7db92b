package salvage

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/deepankarm/jsonsalvage/pkg/internal/jsonparse"
)

const corruptKeyPrefix = "__corrupt_line_"

// CorruptKey returns the placeholder key written in place of corrupt line n
// inside an object.
func CorruptKey(n int) string {
	return fmt.Sprintf("%s%d", corruptKeyPrefix, n)
}

// document is text whose first and last non-blank bytes are a matching
// bracket pair.
type document struct {
	open, close byte
	lines       []string // content between the outer brackets
	firstLine   int      // original line number of lines[0]
}

func outerDocument(text string) (document, bool) {
	start := strings.IndexFunc(text, func(r rune) bool { return !isBlank(r) })
	if start < 0 {
		return document{}, false
	}
	trimmed := strings.TrimRight(text[start:], " \t\r\n")
	if len(trimmed) < 2 {
		return document{}, false
	}
	open, last := trimmed[0], trimmed[len(trimmed)-1]
	if (open != '{' && open != '[') || opener(last) != open {
		return document{}, false
	}

	lines := strings.Split(trimmed[1:len(trimmed)-1], "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return document{
		open:      open,
		close:     last,
		lines:     lines,
		firstLine: strings.Count(text[:start], "\n") + 1,
	}, true
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func opener(closer byte) byte {
	switch closer {
	case '}':
		return '{'
	case ']':
		return '['
	}
	return 0
}

// lineScan is the bracket state carried from one line to the next. Strings
// never span lines, so only the stack persists.
type lineScan struct {
	stack []byte

	// stack[:floor] is untouched since the start of the current line and
	// popped holds the line-start entries removed below it, top first.
	floor  int
	popped []byte
}

func (s *lineScan) begin() {
	s.floor = len(s.stack)
	s.popped = s.popped[:0]
}

func (s *lineScan) push(c byte) {
	s.stack = append(s.stack, c)
}

// pop removes the top opener and returns it, or 0 when the stack is empty.
func (s *lineScan) pop() byte {
	n := len(s.stack)
	if n == 0 {
		return 0
	}
	top := s.stack[n-1]
	s.stack = s.stack[:n-1]
	if n == s.floor {
		s.floor--
		s.popped = append(s.popped, top)
	}
	return top
}

// rollback restores the stack as it was when the line began.
func (s *lineScan) rollback() {
	s.stack = s.stack[:s.floor]
	for i := len(s.popped) - 1; i >= 0; i-- {
		s.stack = append(s.stack, s.popped[i])
	}
	s.begin()
}

// container returns the bracket enclosing the current position.
func (s *lineScan) container(outer byte) byte {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1]
	}
	return outer
}

// lexLine scans one line and returns a non-empty reason when the line breaks
// bracket or string structure.
func (s *lineScan) lexLine(line string) string {
	inString, escaped := false, false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			case c < 0x20 && c != '\t':
				return "invalid control character"
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			s.push(c)
		case '}', ']':
			if s.pop() != opener(c) {
				return "mismatched brackets"
			}
		}
	}
	if inString {
		return "unclosed string"
	}
	return ""
}

// recoverLines classifies every line of doc, rebuilds the document with
// placeholders for corrupt lines and validates the rebuild.
func (r *recovery) recoverLines(doc document) *Result {
	log := r.cfg.logger

	corrupt := r.classifyLines(doc)
	rebuilt := rebuild(doc, corrupt)
	log.Debug("document rebuilt",
		slog.Int("lines", len(doc.lines)),
		slog.Int("corrupt_lines", len(corrupt)),
		slog.Int("bytes", len(rebuilt)))

	v, err := jsonparse.Parse(rebuilt)
	if err == nil {
		return r.result(v)
	}
	log.Debug("rebuilt document did not parse", slog.Any("error", err))

	if f, ok := largestFragment(r.text); ok {
		r.warn(KindReconstructionFailed, 0, "reconstruction failed, using largest valid fragment")
		log.Debug("fragment extracted", slog.Int("offset", f.Start), slog.Int("fragment_len", f.Len()))
		return r.result(f.value)
	}
	if v, ok := r.repair(); ok {
		return r.result(v)
	}
	r.warn(KindNoRecoverableJSON, 0, "could not recover any valid JSON")
	return r.result(nil)
}

// classifyLines returns, per index of doc.lines, the container bracket of
// each corrupt line. It warns once per corrupt line.
//
// A line at the top level that opens and closes nothing is also checked as a
// standalone entry of the outer container. Its validity does not depend on
// the lines accepted before it, so the check is the same as validating the
// accumulated context plus the line.
func (r *recovery) classifyLines(doc document) map[int]byte {
	corrupt := make(map[int]byte)
	s := &lineScan{}

	for i, line := range doc.lines {
		n := doc.firstLine + i
		container := s.container(doc.open)
		topLevel := len(s.stack) == 0

		s.begin()
		if reason := s.lexLine(line); reason != "" {
			s.rollback()
			corrupt[i] = container
			r.warn(KindCorruptLine, n, "%s at line %d", reason, n)
			continue
		}

		entry := strings.TrimSpace(line)
		if !topLevel || len(s.stack) != 0 || entry == "" {
			continue
		}
		entry = strings.TrimSpace(strings.TrimSuffix(entry, ","))
		if jsonparse.Valid(string(doc.open) + entry + string(doc.close)) {
			continue
		}
		if strings.Contains(entry, ":") && strings.ContainsAny(entry, "{}[]") {
			corrupt[i] = container
			r.warn(KindCorruptLine, n, "malformed entry at line %d", n)
		}
	}
	return corrupt
}

// rebuild writes the document back with placeholders for corrupt lines.
// Kept lines carry their own separators, so commas are only added around
// placeholders, based on the entries actually written.
func rebuild(doc document, corrupt map[int]byte) string {
	type part struct {
		text        string
		placeholder bool
	}
	parts := make([]part, 0, len(doc.lines))
	for i, line := range doc.lines {
		if container, ok := corrupt[i]; ok {
			p := "null"
			if container == '{' {
				p = `"` + CorruptKey(doc.firstLine+i) + `": null`
			}
			parts = append(parts, part{text: p, placeholder: true})
			continue
		}
		if t := strings.TrimSpace(line); t != "" {
			parts = append(parts, part{text: t})
		}
	}

	var b strings.Builder
	b.WriteByte(doc.open)
	for j, p := range parts {
		if j > 0 {
			if p.placeholder && strings.IndexByte(",{[", lastByte(&b)) < 0 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(p.text)
		if p.placeholder && j+1 < len(parts) && strings.IndexByte("}],", parts[j+1].text[0]) < 0 {
			b.WriteByte(',')
		}
	}
	b.WriteByte(doc.close)
	return b.String()
}

func lastByte(b *strings.Builder) byte {
	s := b.String()
	return s[len(s)-1]
}
