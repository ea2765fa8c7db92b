package salvage_test

import (
	"errors"
	"testing"

	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
	"github.com/deepankarm/jsonsalvage/pkg/salvage"
)

func TestStream_Feed(t *testing.T) {
	chunks := []string{
		`Sure! Here you go: {"city": "Par`,
		`is", "tags": ["a",`,
		` "b"]} Anything else?`,
	}

	s := salvage.NewStream()
	var res *salvage.Result
	for i, chunk := range chunks {
		var err error
		res, err = s.Feed([]byte(chunk))
		if err != nil {
			t.Fatalf("Feed(%d) error = %v", i, err)
		}
		if i < len(chunks)-1 && res.Value != nil {
			t.Errorf("Feed(%d) recovered %s before the object closed", i, compact(res.Value))
		}
	}

	if got := compact(res.Value); got != `{"city":"Paris","tags":["a","b"]}` {
		t.Errorf("Value = %s", got)
	}

	whole := mustRecover(t, string(s.Buffer()))
	if !jsonvalue.Equal(whole.Value, res.Value) || len(whole.Warnings) != len(res.Warnings) {
		t.Errorf("stream result differs from a single Recover: %v vs %v", res.Warnings, whole.Warnings)
	}
}

func TestStream_Reset(t *testing.T) {
	s := salvage.NewStream()

	s.Feed([]byte(`{"a": `))
	if len(s.Buffer()) == 0 {
		t.Error("expected buffer to have data")
	}

	s.Reset()
	if len(s.Buffer()) != 0 {
		t.Error("expected buffer to be empty after reset")
	}

	res, err := s.Feed([]byte(`[1, 2]`))
	if err != nil {
		t.Fatal(err)
	}
	if compact(res.Value) != `[1,2]` || len(res.Warnings) != 0 {
		t.Errorf("Value = %s, Warnings = %v", compact(res.Value), res.Warnings)
	}
}

func TestStream_SizeLimit(t *testing.T) {
	s := salvage.NewStream(salvage.WithMaxLength(8))

	if _, err := s.Feed([]byte(`{"a":`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Feed([]byte(` 12345}`))
	if !errors.Is(err, salvage.ErrSizeLimitExceeded) {
		t.Fatalf("error = %v, want ErrSizeLimitExceeded", err)
	}
	if got := len(s.Buffer()); got != 12 {
		t.Errorf("buffer length = %d, want 12", got)
	}
}

func TestStream_BufferIsCopy(t *testing.T) {
	s := salvage.NewStream()
	s.Feed([]byte(`{}`))

	buf := s.Buffer()
	buf[0] = 'x'
	if string(s.Buffer()) != `{}` {
		t.Errorf("Buffer() exposed internal state: %q", s.Buffer())
	}
}
