package jsonvalue_test

import (
	"testing"

	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
)

type decodeTarget struct {
	Name  string   `json:"name"`
	Age   int      `json:"age"`
	Tags  []string `json:"tags"`
	Admin bool     `json:"admin"`
	Inner struct {
		Score float64 `json:"score"`
	} `json:"inner"`
}

func TestDecode(t *testing.T) {
	inner := jsonvalue.NewObject()
	inner.Set("score", jsonvalue.Number("0.5"))

	obj := jsonvalue.NewObject()
	obj.Set("name", jsonvalue.String("Ann"))
	obj.Set("age", jsonvalue.Number("30"))
	obj.Set("tags", jsonvalue.NewArray(jsonvalue.String("a"), jsonvalue.String("b")))
	obj.Set("admin", jsonvalue.Bool(true))
	obj.Set("inner", inner)
	obj.Set("__corrupt_line_4", jsonvalue.Null{})

	var got decodeTarget
	if err := jsonvalue.Decode(obj, &got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Name != "Ann" || got.Age != 30 || !got.Admin || got.Inner.Score != 0.5 {
		t.Errorf("Decode() = %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[1] != "b" {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestDecode_TypeMismatch(t *testing.T) {
	obj := jsonvalue.NewObject()
	obj.Set("name", jsonvalue.NewArray())

	var got decodeTarget
	if err := jsonvalue.Decode(obj, &got); err == nil {
		t.Error("expected an error decoding an array into a string field")
	}
}

func TestDecode_Map(t *testing.T) {
	obj := jsonvalue.NewObject()
	obj.Set("x", jsonvalue.Number("5"))

	got := map[string]any{}
	if err := jsonvalue.Decode(obj, &got); err != nil {
		t.Fatal(err)
	}
	if got["x"] != float64(5) {
		t.Errorf("x = %#v, want 5", got["x"])
	}
}
