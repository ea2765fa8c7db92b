package jsonvalue

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object with unique keys kept in first-insertion order.
// The zero value is an empty object ready to use.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isValue()   {}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

// Set stores v under key. Re-setting a key replaces its value but keeps its position.
func (o *Object) Set(key string, v Value) {
	if o.m == nil {
		o.m = orderedmap.New[string, Value]()
	}
	o.m.Set(key, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o.m == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if o.m == nil {
		return false
	}
	_, ok := o.m.Delete(key)
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o.m == nil {
		return 0
	}
	return o.m.Len()
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	if o.m == nil {
		return keys
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every member in order until fn returns false.
func (o *Object) Each(fn func(key string, v Value) bool) {
	if o.m == nil {
		return
	}
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (o *Object) MarshalJSON() ([]byte, error) { return []byte(Serialize(o, 0)), nil }
