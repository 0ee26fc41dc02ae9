// Package ptr provides pointer helpers for optional request and document fields.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Deref dereferences p and returns the value it points to if not nil,
// or else returns def.
func Deref[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

// Clone returns a pointer to a copy of *p, or nil when p is nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
