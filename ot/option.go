package ot

// Option is a table field group which may or may not be present in a font,
// depending on the version or the byte length of its table.
type Option[T any] struct {
	value   T
	present bool
}

// Some wraps a field group which has been read from a table.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None is the absent field group.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome is true if the fields are present.
func (o Option[T]) IsSome() bool {
	return o.present
}

// Unwrap returns the fields and whether they are present, following the
// "comma ok" idiom.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.present
}

// Or returns the fields if present, def otherwise.
func (o Option[T]) Or(def T) T {
	if o.present {
		return o.value
	}
	return def
}
