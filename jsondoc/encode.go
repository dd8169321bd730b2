package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/orderedmap"
)

var ErrUnsupportedValue = errors.New("jsondoc: unsupported value")

// Marshal renders v as indented JSON where every array holding only scalars
// (bools, numbers, strings, nulls) is written on a single line:
//
//	{
//	  "format_version": [1, 1, 0],
//	  "pattern": ["C"]
//	}
//
// Arrays with at least one object or array element are spread over one line
// per element. Apart from that the layout matches JSON.stringify(v, null, indent).
//
// Strings inside compact arrays are written verbatim. Older pack generators
// inserted a space after every comma in such arrays, strings included, and
// escaped backslashes twice; Marshal does neither, so the output reads back
// to the same value.
func Marshal(v any, indent int) ([]byte, error) {
	e := &encoder{indent: strings.Repeat(" ", max(indent, 0)), compact: true}
	if err := e.write(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalIndent renders v like JSON.stringify(v, null, indent), without
// collapsing scalar arrays.
func MarshalIndent(v any, indent int) ([]byte, error) {
	e := &encoder{indent: strings.Repeat(" ", max(indent, 0))}
	if err := e.write(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	buf     bytes.Buffer
	indent  string
	compact bool
}

func (e *encoder) write(v any, depth int) error {
	v, err := normalize(v)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		writeString(&e.buf, t)
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
	case uint64:
		e.buf.WriteString(strconv.FormatUint(t, 10))
	case float64:
		e.buf.WriteString(formatNumber(t))
	case *orderedmap.OrderedMap:
		keys := t.Keys()
		return e.writeObject(keys, func(k string) any {
			v, _ := t.Get(k)
			return v
		}, depth)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return e.writeObject(keys, func(k string) any { return t[k] }, depth)
	case []any:
		return e.writeArray(t, depth)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
	return nil
}

func (e *encoder) writeObject(keys []string, get func(string) any, depth int) error {
	if len(keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.buf, k)
		e.buf.WriteByte(':')
		if e.indent != "" {
			e.buf.WriteByte(' ')
		}
		if err := e.write(get(k), depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder) writeArray(items []any, depth int) error {
	if len(items) == 0 {
		e.buf.WriteString("[]")
		return nil
	}
	flat := make([]any, len(items))
	scalars := true
	for i, it := range items {
		n, err := normalize(it)
		if err != nil {
			return err
		}
		flat[i] = n
		if !isScalar(n) {
			scalars = false
		}
	}
	if e.compact && scalars {
		e.buf.WriteByte('[')
		for i, it := range flat {
			if i > 0 {
				e.buf.WriteString(", ")
			}
			if err := e.write(it, depth+1); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
		return nil
	}
	e.buf.WriteByte('[')
	for i, it := range flat {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.write(it, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string, int64, uint64, float64:
		return true
	}
	return false
}

// normalize flattens builders and folds Go's many numeric, slice and map
// kinds into the handful the encoder writes.
func normalize(v any) (any, error) {
	v = plain(v)
	switch t := v.(type) {
	case nil, bool, string, int64, uint64, float64, *orderedmap.OrderedMap, map[string]any, []any:
		return v, nil
	case orderedmap.OrderedMap:
		return &t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return uint64(t), nil
	case uint8:
		return uint64(t), nil
	case uint16:
		return uint64(t), nil
	case uint32:
		return uint64(t), nil
	case float32:
		return float64(t), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// formatNumber follows ECMAScript Number::toString.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

const hex = "0123456789abcdef"

// writeString quotes s the way JSON.stringify does: no HTML escaping,
// control characters as \uXXXX unless they have a short form.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				buf.WriteString(`\"`)
			case '\\':
				buf.WriteString(`\\`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				if c < 0x20 {
					buf.WriteString(`\u00`)
					buf.WriteByte(hex[c>>4])
					buf.WriteByte(hex[c&0xf])
				} else {
					buf.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString("\ufffd")
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}
