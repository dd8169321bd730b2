// Package jsondoc builds ordered JSON documents and encodes them the way the
// game expects to read them: indented, with scalar arrays kept on one line.
package jsondoc

import (
	"github.com/iancoleman/orderedmap"
)

// Node is a builder that can be lowered into a plain value tree.
type Node interface {
	Value() any
}

// Object is an ordered key/value builder. Keys keep the position of their
// first insertion, even when overwritten.
type Object struct {
	m *orderedmap.OrderedMap
}

func NewObject() *Object {
	return &Object{m: orderedmap.New()}
}

// Add sets key to a nested builder. The builder is read when Value is called,
// so later changes to it are visible.
func (o *Object) Add(key string, n Node) {
	o.m.Set(key, n)
}

// AddProperty sets key to a leaf value: a bool, string or number, or an
// already-plain value (slice, ordered map) that is copied through as-is.
func (o *Object) AddProperty(key string, v any) {
	o.m.Set(key, v)
}

func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

func (o *Object) Len() int {
	return len(o.m.Keys())
}

// Value returns a fresh ordered map with every nested builder flattened.
func (o *Object) Value() any {
	out := orderedmap.New()
	for _, k := range o.m.Keys() {
		v, _ := o.m.Get(k)
		out.Set(k, plain(v))
	}
	return out
}

// Array is an ordered list builder.
type Array struct {
	items []any
}

func NewArray(vs ...any) *Array {
	a := &Array{}
	for _, v := range vs {
		a.Add(v)
	}
	return a
}

// Add appends a leaf value or nested builder.
func (a *Array) Add(v any) {
	a.items = append(a.items, v)
}

// AddAll appends a snapshot of other's current contents.
func (a *Array) AddAll(other *Array) {
	a.items = append(a.items, other.Value().([]any)...)
}

func (a *Array) Len() int {
	return len(a.items)
}

// Value returns a fresh slice with every nested builder flattened.
func (a *Array) Value() any {
	out := make([]any, 0, len(a.items))
	for _, v := range a.items {
		out = append(out, plain(v))
	}
	return out
}

func plain(v any) any {
	if n, ok := v.(Node); ok {
		return n.Value()
	}
	return v
}
