package jsonvalue

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/deepankarm/jsonsalvage/pkg/internal/reflectutil"
)

// CircularMarker replaces a composite node that is already being serialized
// further up the current path.
const CircularMarker = "[Circular]"

type marshaler interface {
	MarshalJSON() ([]byte, error)
}

var valueType = reflect.TypeOf((*Value)(nil)).Elem()

// Serialize renders v as JSON text. indent > 0 pretty-prints with that many
// spaces per level; otherwise output is compact.
//
// v may be a Value or an arbitrary Go graph built from maps, slices, pointers
// and structs. A node that is revisited while it is still open (a cycle) is
// written as the string CircularMarker, so Serialize terminates on any graph.
// Shared but acyclic nodes are written in full at each occurrence.
func Serialize(v any, indent int) string {
	e := &encoder{onPath: make(map[any]struct{})}
	if indent > 0 {
		e.indent = strings.Repeat(" ", indent)
	}
	e.encode(v)
	return e.buf.String()
}

type encoder struct {
	buf    bytes.Buffer
	indent string
	depth  int
	onPath map[any]struct{}
}

// enter marks id as open. It returns false when id is already open.
func (e *encoder) enter(id any) bool {
	if _, ok := e.onPath[id]; ok {
		return false
	}
	e.onPath[id] = struct{}{}
	return true
}

func (e *encoder) leave(id any) {
	delete(e.onPath, id)
}

func (e *encoder) circular() {
	e.writeString(CircularMarker)
}

func (e *encoder) encode(v any) {
	switch tv := v.(type) {
	case nil, Null:
		e.buf.WriteString("null")
	case Bool:
		e.buf.WriteString(strconv.FormatBool(bool(tv)))
	case Number:
		if json.Valid([]byte(tv)) && isNumberLiteral(string(tv)) {
			e.buf.WriteString(string(tv))
		} else {
			e.writeString(string(tv))
		}
	case String:
		e.writeString(string(tv))
	case *Array:
		if tv == nil {
			e.buf.WriteString("null")
			return
		}
		if !e.enter(tv) {
			e.circular()
			return
		}
		e.writeArray(len(tv.Items), func(i int) { e.encode(tv.Items[i]) })
		e.leave(tv)
	case *Object:
		if tv == nil {
			e.buf.WriteString("null")
			return
		}
		if !e.enter(tv) {
			e.circular()
			return
		}
		e.open('{')
		n := 0
		tv.Each(func(key string, v Value) bool {
			e.member(n, key)
			e.encode(v)
			n++
			return true
		})
		e.close('}', n)
		e.leave(tv)
	default:
		e.encodeReflect(reflect.ValueOf(v))
	}
}

func (e *encoder) encodeReflect(rv reflect.Value) {
	if !rv.IsValid() {
		e.buf.WriteString("null")
		return
	}
	if rv.Type().Implements(valueType) && rv.CanInterface() {
		if !(reflectutil.IsNilable(rv.Kind()) && rv.IsNil()) {
			e.encode(rv.Interface())
			return
		}
	}
	if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface && rv.CanInterface() {
		if m, ok := rv.Interface().(marshaler); ok && !(reflectutil.IsNilable(rv.Kind()) && rv.IsNil()) {
			e.writeMarshaler(m)
			return
		}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return
		}
		id, _ := reflectutil.Identity(rv)
		if !e.enter(id) {
			e.circular()
			return
		}
		var m marshaler
		if rv.CanInterface() {
			m, _ = rv.Interface().(marshaler)
		}
		if m != nil {
			e.writeMarshaler(m)
		} else {
			e.encodeReflect(rv.Elem())
		}
		e.leave(id)
	case reflect.Interface:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return
		}
		e.encodeReflect(rv.Elem())
	case reflect.Map:
		e.encodeMap(rv)
	case reflect.Slice:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			e.writeScalar(rv.Interface())
			return
		}
		id, ok := reflectutil.Identity(rv)
		if ok && !e.enter(id) {
			e.circular()
			return
		}
		e.writeArray(rv.Len(), func(i int) { e.encodeReflect(rv.Index(i)) })
		if ok {
			e.leave(id)
		}
	case reflect.Array:
		e.writeArray(rv.Len(), func(i int) { e.encodeReflect(rv.Index(i)) })
	case reflect.Struct:
		e.encodeStruct(rv)
	case reflect.String:
		e.writeString(rv.String())
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			e.buf.WriteString("null")
			return
		}
		e.writeScalar(f)
	default:
		// Channels, funcs and complex numbers have no JSON form.
		e.buf.WriteString("null")
	}
}

func (e *encoder) encodeMap(rv reflect.Value) {
	if rv.IsNil() {
		e.buf.WriteString("null")
		return
	}
	id, _ := reflectutil.Identity(rv)
	if !e.enter(id) {
		e.circular()
		return
	}

	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: mapKey(iter.Key()), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	e.open('{')
	for i, en := range entries {
		e.member(i, en.key)
		e.encodeReflect(en.value)
	}
	e.close('}', len(entries))
	e.leave(id)
}

func (e *encoder) encodeStruct(rv reflect.Value) {
	e.open('{')
	n := 0
	for _, f := range reflectutil.JSONFields(rv.Type()) {
		fv := rv.FieldByIndex(f.Index)
		if f.OmitEmpty && reflectutil.IsEmptyValue(fv) {
			continue
		}
		e.member(n, f.Name)
		e.encodeReflect(fv)
		n++
	}
	e.close('}', n)
}

func mapKey(k reflect.Value) string {
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10)
	}
	return fmt.Sprint(k.Interface())
}

func (e *encoder) writeArray(n int, item func(i int)) {
	e.open('[')
	for i := range n {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline()
		item(i)
	}
	e.close(']', n)
}

func (e *encoder) open(c byte) {
	e.buf.WriteByte(c)
	e.depth++
}

func (e *encoder) close(c byte, n int) {
	e.depth--
	if n > 0 {
		e.newline()
	}
	e.buf.WriteByte(c)
}

// member writes the separator and key for the n-th member of an object.
func (e *encoder) member(n int, key string) {
	if n > 0 {
		e.buf.WriteByte(',')
	}
	e.newline()
	e.writeString(key)
	e.buf.WriteByte(':')
	if e.indent != "" {
		e.buf.WriteByte(' ')
	}
}

func (e *encoder) newline() {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for range e.depth {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) writeString(s string) {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		e.buf.WriteString(strconv.Quote(s))
		return
	}
	e.buf.Write(b)
}

func (e *encoder) writeScalar(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		e.buf.WriteString("null")
		return
	}
	e.buf.Write(b)
}

func (e *encoder) writeMarshaler(m marshaler) {
	b, err := m.MarshalJSON()
	if err != nil || !json.Valid(b) {
		e.buf.WriteString("null")
		return
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, b); err != nil {
		e.buf.Write(b)
		return
	}
	e.buf.Write(compact.Bytes())
}

// isNumberLiteral rejects valid JSON texts that are not numbers, such as "true".
func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '-' || (c >= '0' && c <= '9')
}
