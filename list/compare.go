package list

import "golang.org/x/exp/constraints"

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *List[T], eq func(T, T) bool) bool {
	a.check("equal")
	b.check("equal")

	if a.data.Len() != b.data.Len() {
		return false
	}

	for i := range a.data.Len() {
		if !eq(a.data.At(i), b.data.At(i)) {
			return false
		}
	}

	return true
}

// Compare orders two lists lexicographically. The result is -1, 0 or +1.
// A list that is a prefix of another is the smaller one.
func Compare[T constraints.Ordered](a, b *List[T]) int {
	a.check("compare")
	b.check("compare")

	n := min(a.data.Len(), b.data.Len())
	for i := range n {
		x, y := a.data.At(i), b.data.At(i)
		switch {
		case x < y:
			return -1
		case x > y:
			return +1
		}
	}

	switch {
	case a.data.Len() < b.data.Len():
		return -1
	case a.data.Len() > b.data.Len():
		return +1
	}

	return 0
}
