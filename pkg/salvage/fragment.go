package salvage

import (
	"strings"

	"github.com/deepankarm/jsonsalvage/pkg/internal/jsonparse"
	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
)

// ExtractLargestFragment finds the longest substring of text that is a valid
// JSON object or array. Ties go to the earliest one. It reports false when
// text contains no valid fragment.
func ExtractLargestFragment(text string) (jsonvalue.Value, bool) {
	f, ok := largestFragment(text)
	if !ok {
		return nil, false
	}
	return f.value, true
}

type fragment struct {
	jsonparse.Span
	value jsonvalue.Value
	line  int // 1-based line of the fragment start
}

// largestFragment validates balanced candidates longest first, so the first
// one that parses is the answer.
func largestFragment(text string) (fragment, bool) {
	for _, span := range jsonparse.BalancedSpans(text) {
		v, err := jsonparse.Parse(text[span.Start:span.End])
		if err != nil {
			continue
		}
		return fragment{
			Span:  span,
			value: v,
			line:  strings.Count(text[:span.Start], "\n") + 1,
		}, true
	}
	return fragment{}, false
}
