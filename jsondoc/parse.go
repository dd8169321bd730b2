package jsondoc

import (
	"errors"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("jsondoc: invalid json")

// Parse reads JSON text into a plain value tree. Objects become
// *orderedmap.OrderedMap in document key order, arrays []any, integers int64
// and other numbers float64.
func Parse(b []byte) (any, error) {
	if !gjson.ValidBytes(b) {
		return nil, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(b)), nil
}

func fromResult(r gjson.Result) any {
	switch r.Type {
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return r.Str
	case gjson.Number:
		if strings.ContainsAny(r.Raw, ".eE") {
			return r.Num
		}
		return r.Int()
	case gjson.JSON:
		if r.IsArray() {
			out := []any{}
			r.ForEach(func(_, v gjson.Result) bool {
				out = append(out, fromResult(v))
				return true
			})
			return out
		}
		m := orderedmap.New()
		r.ForEach(func(k, v gjson.Result) bool {
			m.Set(k.Str, fromResult(v))
			return true
		})
		return m
	}
	return nil
}
