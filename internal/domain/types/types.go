// Package types contains common types used across the application
package types

// Opt is a value that may be absent. The zero value is absent, which keeps
// an empty string distinct from a missing attribute.
type Opt[T comparable] struct {
	val T
	ok  bool
}

// Some wraps a present value.
func Some[T comparable](v T) Opt[T] {
	return Opt[T]{val: v, ok: true}
}

// None returns an absent value.
func None[T comparable]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.ok
}

// IsSome reports whether the value is present.
func (o Opt[T]) IsSome() bool { return o.ok }

// OrElse returns the value when present, def otherwise.
func (o Opt[T]) OrElse(def T) T {
	if o.ok {
		return o.val
	}
	return def
}

// NonZero narrows a present zero value (e.g. an empty string) to absent.
func (o Opt[T]) NonZero() Opt[T] {
	var zero T
	if !o.ok || o.val == zero {
		return Opt[T]{}
	}
	return o
}

// Cell renders the value for a delimited table: absent becomes an empty cell.
func Cell(o Opt[string]) string {
	return o.OrElse("")
}

// Nullable converts the value into a database/sql argument (nil when absent).
func Nullable[T comparable](o Opt[T]) any {
	if !o.ok {
		return nil
	}
	return o.val
}
