// Package fn provides small generic helpers in the style of functional languages: tuple
// projections, identity, an inline conditional, an optional value and a generic uncons.
package fn

// Identity returns its argument unchanged.
func Identity[T any](x T) T {
	return x
}

// Fst returns the first component of the pair.
func Fst[A, B any](p Pair[A, B]) A {
	return p.first
}

// Snd returns the second component of the pair.
func Snd[A, B any](p Pair[A, B]) B {
	return p.second
}

// Ifte returns then if cond is true, otherwise els. Both values are evaluated by the caller.
func Ifte[T any](then, els T, cond bool) T {
	if cond {
		return then
	}

	return els
}

// Const returns a function that ignores its argument and always returns x.
func Const[B, A any](x A) func(B) A {
	return func(B) A {
		return x
	}
}

// Comp is left to right composition: Comp(f, g)(x) == g(f(x)).
func Comp[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Uncons splits s into its first element and the rest.
// It returns None when s is empty.
//
// The remainder shares the backing array with s. The caller gives up s.
func Uncons[S ~[]E, E any](s S) Option[Pair[E, S]] {
	if len(s) == 0 {
		return None[Pair[E, S]]()
	}

	return Some(MakePair(s[0], s[1:]))
}
