package signals

// Optional holds a host property that may be absent.
// The zero value is an absent value.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr maps a nil pointer to None and anything else to Some.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.ok }

// Or returns the value if present, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
