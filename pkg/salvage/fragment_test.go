package salvage_test

import (
	"strings"
	"testing"

	"github.com/deepankarm/jsonsalvage/pkg/internal/jsonparse"
	"github.com/deepankarm/jsonsalvage/pkg/salvage"
)

func TestExtractLargestFragment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"object in prose", `Here is data: {"x": 5} end.`, `{"x":5}`, true},
		{"longest wins", `a {"x":1} b [1,2,3,4]`, `[1,2,3,4]`, true},
		{"tie goes to earliest", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"invalid outer skipped", `{"a": {"b": 1}, oops}`, `{"b":1}`, true},
		{"brackets inside strings ignored", `x {"s": "}{"} y`, `{"s":"}{"}`, true},
		{"markdown fence", "```json\n[{\"id\": 1}]\n```", `[{"id":1}]`, true},
		{"no brackets", `no json here`, "", false},
		{"unbalanced only", `{"a": [1, 2`, "", false},
		{"empty", ``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := salvage.ExtractLargestFragment(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if v != nil {
					t.Errorf("value = %v, want nil", v)
				}
				return
			}
			if got := compact(v); got != tt.want {
				t.Errorf("value = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractLargestFragment_DeepInput(t *testing.T) {
	text := "noise " + strings.Repeat("[", 5000) + strings.Repeat("]", 5000) + " noise"
	v, ok := salvage.ExtractLargestFragment(text)
	if !ok {
		t.Fatal("expected a fragment")
	}
	if got := len(compact(v)); got != 10000 {
		t.Errorf("fragment length = %d, want 10000", got)
	}
}

func TestExtractLargestFragment_BeyondMaxDepth(t *testing.T) {
	depth := 3 * jsonparse.MaxDepth
	text := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	v, ok := salvage.ExtractLargestFragment(text)
	if !ok {
		t.Fatal("expected a fragment")
	}
	if got := len(compact(v)); got != 2*jsonparse.MaxDepth {
		t.Errorf("fragment length = %d, want %d", got, 2*jsonparse.MaxDepth)
	}
}

func TestRecover_FragmentWarningReportsLine(t *testing.T) {
	res := mustRecover(t, "Some preamble.\nThe answer:\n{\"x\": 5}\nThanks!")
	if compact(res.Value) != `{"x":5}` {
		t.Fatalf("Value = %s", compact(res.Value))
	}
	w := lastWarning(t, res)
	if w.Kind != salvage.KindFragmentExtracted || w.Line != 3 {
		t.Errorf("last warning = %+v, want fragment_extracted at line 3", w)
	}
}
