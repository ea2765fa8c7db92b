// Package reflectutil provides reflection helpers for serializing arbitrary Go values as JSON.
package reflectutil

import (
	"reflect"
	"strings"
)

// JSONFieldName returns the JSON field name for a struct field.
// Returns the json tag name if present, otherwise the Go field name.
// Returns "-" for ignored fields.
func JSONFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := tag
	if idx := strings.Index(tag, ","); idx != -1 {
		name = tag[:idx]
	}
	if name == "" {
		return field.Name
	}
	return name
}

// HasOmitEmpty reports whether the field's json tag carries the omitempty option.
func HasOmitEmpty(field reflect.StructField) bool {
	tag := field.Tag.Get("json")
	idx := strings.Index(tag, ",")
	if idx == -1 {
		return false
	}
	for _, opt := range strings.Split(tag[idx+1:], ",") {
		if opt == "omitempty" {
			return true
		}
	}
	return false
}

// Field is a struct field selected for JSON output.
type Field struct {
	Name      string // JSON name
	Index     []int  // Index sequence for reflect.Value.FieldByIndex
	OmitEmpty bool
}

// JSONFields lists the exported fields of a struct type in declaration order,
// flattening untagged embedded structs the way encoding/json does.
// Fields tagged "-" are skipped.
func JSONFields(typ reflect.Type) []Field {
	typ = UnwrapPointer(typ)
	if typ.Kind() != reflect.Struct {
		return nil
	}
	var fields []Field
	seen := make(map[string]bool)
	collectFields(typ, nil, seen, &fields)
	return fields
}

func collectFields(typ reflect.Type, index []int, seen map[string]bool, out *[]Field) {
	for i := range typ.NumField() {
		sf := typ.Field(i)
		fieldIndex := append(append([]int(nil), index...), i)

		if sf.Anonymous && sf.Tag.Get("json") == "" {
			embedded := sf.Type
			if embedded.Kind() == reflect.Pointer {
				// Nil embedded pointers cannot be walked safely.
				continue
			}
			if embedded.Kind() == reflect.Struct {
				collectFields(embedded, fieldIndex, seen, out)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		name := JSONFieldName(sf)
		if name == "-" || seen[name] {
			continue
		}
		seen[name] = true
		*out = append(*out, Field{Name: name, Index: fieldIndex, OmitEmpty: HasOmitEmpty(sf)})
	}
}
