package jsonvalue_test

import (
	"strings"
	"testing"

	"github.com/deepankarm/jsonsalvage/pkg/jsonvalue"
)

func TestObjectOrder(t *testing.T) {
	obj := jsonvalue.NewObject()
	obj.Set("b", jsonvalue.Number("1"))
	obj.Set("a", jsonvalue.Number("2"))
	obj.Set("b", jsonvalue.Number("3"))

	if got := strings.Join(obj.Keys(), ","); got != "b,a" {
		t.Errorf("keys = %q, want %q", got, "b,a")
	}
	if v, _ := obj.Get("b"); v != jsonvalue.Number("3") {
		t.Errorf("b = %v, want 3 (last write wins)", v)
	}
	if !obj.Delete("b") || obj.Len() != 1 {
		t.Errorf("delete failed, len = %d", obj.Len())
	}

	var visited []string
	obj.Set("c", jsonvalue.Null{})
	obj.Each(func(key string, _ jsonvalue.Value) bool {
		visited = append(visited, key)
		return false
	})
	if len(visited) != 1 || visited[0] != "a" {
		t.Errorf("Each should stop after the first member, visited %v", visited)
	}
}

func TestObjectZeroValue(t *testing.T) {
	var obj jsonvalue.Object
	if obj.Len() != 0 || len(obj.Keys()) != 0 {
		t.Errorf("zero object has len %d, keys %q", obj.Len(), obj.Keys())
	}
	if _, ok := obj.Get("a"); ok {
		t.Error("Get found a key in a zero object")
	}
	if obj.Delete("a") {
		t.Error("Delete removed a key from a zero object")
	}
	obj.Each(func(string, jsonvalue.Value) bool {
		t.Error("Each visited a member of a zero object")
		return true
	})
	if !jsonvalue.Equal(&obj, jsonvalue.NewObject()) {
		t.Error("zero object should equal an empty object")
	}
	if got := jsonvalue.Serialize(&obj, 0); got != "{}" {
		t.Errorf("Serialize(zero object) = %s, want {}", got)
	}

	obj.Set("a", jsonvalue.Bool(true))
	if v, ok := obj.Get("a"); !ok || v != jsonvalue.Bool(true) || obj.Len() != 1 {
		t.Errorf("after Set: a = %v, %v; len = %d", v, ok, obj.Len())
	}
	if got := jsonvalue.Serialize(new(jsonvalue.Object), 0); got != "{}" {
		t.Errorf("Serialize(new(Object)) = %s, want {}", got)
	}
}

func TestEqual(t *testing.T) {
	obj := func(kv ...any) *jsonvalue.Object {
		o := jsonvalue.NewObject()
		for i := 0; i < len(kv); i += 2 {
			o.Set(kv[i].(string), kv[i+1].(jsonvalue.Value))
		}
		return o
	}

	tests := []struct {
		name string
		a, b jsonvalue.Value
		want bool
	}{
		{"null", jsonvalue.Null{}, jsonvalue.Null{}, true},
		{"nil vs null", nil, jsonvalue.Null{}, false},
		{"both nil", nil, nil, true},
		{"numbers by value", jsonvalue.Number("1.0"), jsonvalue.Number("1"), true},
		{"exponent", jsonvalue.Number("1e2"), jsonvalue.Number("100"), true},
		{"different numbers", jsonvalue.Number("1"), jsonvalue.Number("2"), false},
		{"kind mismatch", jsonvalue.String("1"), jsonvalue.Number("1"), false},
		{"arrays", jsonvalue.NewArray(jsonvalue.Bool(true)), jsonvalue.NewArray(jsonvalue.Bool(true)), true},
		{"array length", jsonvalue.NewArray(), jsonvalue.NewArray(jsonvalue.Null{}), false},
		{"objects ignore order", obj("a", jsonvalue.String("x"), "b", jsonvalue.Null{}), obj("b", jsonvalue.Null{}, "a", jsonvalue.String("x")), true},
		{"objects differ", obj("a", jsonvalue.String("x")), obj("a", jsonvalue.String("y")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonvalue.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToAny(t *testing.T) {
	obj := jsonvalue.NewObject()
	obj.Set("n", jsonvalue.Number("2.5"))
	obj.Set("list", jsonvalue.NewArray(jsonvalue.String("x"), jsonvalue.Null{}))

	got := jsonvalue.ToAny(obj).(map[string]any)
	if got["n"] != 2.5 {
		t.Errorf("n = %v", got["n"])
	}
	list := got["list"].([]any)
	if list[0] != "x" || list[1] != nil {
		t.Errorf("list = %v", list)
	}
}

func TestKindString(t *testing.T) {
	if jsonvalue.KindObject.String() != "object" || jsonvalue.Kind(99).String() != "unknown" {
		t.Error("unexpected Kind names")
	}
}
