package jsonparse

import "sort"

// Span is the half-open byte range [Start, End) of a substring.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// BalancedSpans returns every substring of text that starts with '{' or '['
// and ends at its matching closer, ordered longest first with ties broken by
// the earliest start.
//
// Balance is tracked with a depth-counting walk. Quoted strings are opaque,
// escaped quotes included, so delimiters inside string literals do not count.
// The walk itself has no depth limit, but spans nested deeper than MaxDepth
// are left out since Parse rejects them.
func BalancedSpans(text string) []Span {
	w := &walker{text: text, end: make(map[int]int), depth: make(map[int]int)}
	for i := 0; i < len(text); i++ {
		if c := text[i]; c != '{' && c != '[' {
			continue
		}
		if _, done := w.end[i]; !done {
			w.walk(i)
		}
	}

	spans := make([]Span, 0, len(w.end))
	for start, end := range w.end {
		if end > 0 && w.depth[start] <= MaxDepth {
			spans = append(spans, Span{Start: start, End: end})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if li, lj := spans[i].Len(), spans[j].Len(); li != lj {
			return li > lj
		}
		return spans[i].Start < spans[j].Start
	})
	return spans
}

// walker resolves the matching closer of every opener.
//
// A walk that passes an opener outside a string sees exactly what a walk
// started at that opener would see from there on, so one walk resolves all the
// openers it pushes. end[i] holds the exclusive end of the span opened at i,
// or -1 when that opener can never be balanced. depth[i] is the nesting depth
// of that span, 1 for an empty container. Openers that only ever appear inside
// strings get a walk of their own.
type walker struct {
	text  string
	end   map[int]int
	depth map[int]int

	// stack holds pending openers; inner[j] is the deepest child span
	// closed so far under stack[j]
	stack []int
	inner []int
}

func (w *walker) walk(start int) {
	stack, inner := w.stack[:0], w.inner[:0]
	defer func() { w.stack, w.inner = stack[:0], inner[:0] }()

	inString, escaped := false, false
	for k := start; k < len(w.text); k++ {
		c := w.text[k]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			if end, ok := w.end[k]; ok {
				if end < 0 {
					w.fail(stack)
					return
				}
				top := len(inner) - 1
				inner[top] = max(inner[top], w.depth[k])
				k = end - 1 // resume right after the resolved span
				continue
			}
			stack = append(stack, k)
			inner = append(inner, 0)
		case '}', ']':
			top := stack[len(stack)-1]
			if w.text[top] != opener(c) {
				w.fail(stack)
				return
			}
			d := inner[len(inner)-1] + 1
			stack, inner = stack[:len(stack)-1], inner[:len(inner)-1]
			w.end[top] = k + 1
			w.depth[top] = d
			if len(stack) == 0 {
				return
			}
			inner[len(inner)-1] = max(inner[len(inner)-1], d)
		}
	}

	// Reached the end of text with openers still pending
	w.fail(stack)
}

func (w *walker) fail(stack []int) {
	for _, i := range stack {
		w.end[i] = -1
	}
}

func opener(closer byte) byte {
	if closer == '}' {
		return '{'
	}
	return '['
}
