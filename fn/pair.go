package fn

import "fmt"

// Pair is a 2-tuple.
type Pair[A, B any] struct {
	first  A
	second B
}

// MakePair creates a pair of a and b.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{first: a, second: b}
}

// First returns the first component.
func (p Pair[A, B]) First() A {
	return p.first
}

// Second returns the second component.
func (p Pair[A, B]) Second() B {
	return p.second
}

// Unpack returns both components as multiple return values.
func (p Pair[A, B]) Unpack() (A, B) {
	return p.first, p.second
}

// Swap returns the pair with its components exchanged.
func Swap[A, B any](p Pair[A, B]) Pair[B, A] {
	return Pair[B, A]{first: p.second, second: p.first}
}

// String formats the pair as "(a, b)".
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.first, p.second)
}
