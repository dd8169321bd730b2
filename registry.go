package addonpack

// Registry collects entities registered from code, as opposed to the
// declarative Pack calls. Order is kept and duplicates are allowed.
type Registry[T any] struct {
	items []T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

func (r *Registry[T]) Register(v T) {
	r.items = append(r.items, v)
}

// All returns the registered entities in registration order.
func (r *Registry[T]) All() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *Registry[T]) Len() int {
	return len(r.items)
}
