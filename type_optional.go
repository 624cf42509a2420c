package holdings

// Optional holds a value that may be absent. The zero value is absent.
//
// Holdings use it for every numeric column so that "zero" and "unknown"
// are never confused.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, set: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// Or returns the value if present, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// Merge returns o if present, fallback otherwise.
func (o Optional[T]) Merge(fallback Optional[T]) Optional[T] {
	if o.set {
		return o
	}
	return fallback
}
