package reflectutil

import "reflect"

// UnwrapPointer returns the element type if pointer, otherwise returns the type itself.
func UnwrapPointer(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// IsNilable reports whether values of kind k can be nil.
func IsNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// IsEmptyValue mirrors encoding/json's definition of "empty" for omitempty.
func IsEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// Identity returns a key identifying the memory behind a composite value,
// or false for values that have no shared identity. Slices are keyed by
// their backing pointer and length so that sub-slices stay distinct.
func Identity(v reflect.Value) (any, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		if v.IsNil() {
			return nil, false
		}
		return v.Pointer(), true
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return nil, false
		}
		return sliceKey{ptr: v.Pointer(), len: v.Len()}, true
	}
	return nil, false
}

type sliceKey struct {
	ptr uintptr
	len int
}
