// Package jsonvalue is an order-preserving JSON data model.
//
// A Value is one of Null, Bool, Number, String, *Array or *Object. Objects keep
// keys in first-insertion order, which consumers rely on for stable rendering
// and diffing.
package jsonvalue

import (
	"math/big"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Kind constants.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a JSON value. The interface is sealed; only types in this package implement it.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number kept as its source literal so no precision is lost.
type Number string

// String is a JSON string.
type String string

// Array is an ordered JSON array.
type Array struct {
	Items []Value
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (*Array) Kind() Kind { return KindArray }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Number) isValue() {}
func (String) isValue() {}
func (*Array) isValue() {}

// NewArray creates an array holding items.
func NewArray(items ...Value) *Array {
	if items == nil {
		items = []Value{}
	}
	return &Array{Items: items}
}

// Append adds v at the end of the array.
func (a *Array) Append(v Value) {
	a.Items = append(a.Items, v)
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Items)
}

// Float64 returns the number as a float64.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 returns the number as an int64.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Equal reports whether a and b are structurally equal. Numbers compare by
// numeric value, so 1.0 equals 1 and 1e2 equals 100. Object key order is
// ignored; use Keys to compare ordering.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case String:
		return av == b.(String)
	case Number:
		return numbersEqual(av, b.(Number))
	case *Array:
		bv := b.(*Array)
		if av == bv {
			return true
		}
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av == bv {
			return true
		}
		if av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Each(func(key string, v Value) bool {
			other, ok := bv.Get(key)
			equal = ok && Equal(v, other)
			return equal
		})
		return equal
	}
	return false
}

func numbersEqual(a, b Number) bool {
	if a == b {
		return true
	}
	x, ok1 := new(big.Float).SetString(string(a))
	y, ok2 := new(big.Float).SetString(string(b))
	if !ok1 || !ok2 {
		return false
	}
	return x.Cmp(y) == 0
}

// ToAny converts v into plain Go values: nil, bool, json-style float64 numbers,
// string, []any and map[string]any. Key order is lost for objects.
func ToAny(v Value) any {
	switch tv := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(tv)
	case Number:
		f, err := tv.Float64()
		if err != nil {
			return string(tv)
		}
		return f
	case String:
		return string(tv)
	case *Array:
		out := make([]any, len(tv.Items))
		for i, item := range tv.Items {
			out[i] = ToAny(item)
		}
		return out
	case *Object:
		out := make(map[string]any, tv.Len())
		tv.Each(func(key string, v Value) bool {
			out[key] = ToAny(v)
			return true
		})
		return out
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalJSON implements json.Marshaler.
func (b Bool) MarshalJSON() ([]byte, error) { return []byte(Serialize(b, 0)), nil }

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) { return []byte(Serialize(n, 0)), nil }

// MarshalJSON implements json.Marshaler.
func (s String) MarshalJSON() ([]byte, error) { return []byte(Serialize(s, 0)), nil }

// MarshalJSON implements json.Marshaler.
func (a *Array) MarshalJSON() ([]byte, error) { return []byte(Serialize(a, 0)), nil }
