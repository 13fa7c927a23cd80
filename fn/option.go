package fn

import "fmt"

// Option holds either a value (Some) or nothing (None).
// The zero value is None.
type Option[T any] struct {
	val T
	ok  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{val: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and true, or the zero value and false for None.
func (o Option[T]) Get() (T, bool) { //nolint:ireturn
	return o.val, o.ok
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// UnwrapOr returns the value or def for None.
func (o Option[T]) UnwrapOr(def T) T { //nolint:ireturn
	if !o.ok {
		return def
	}

	return o.val
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.val)
}
