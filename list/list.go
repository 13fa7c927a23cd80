// Package list implements List, an owned sequence with cheap insertion and removal at both
// ends and the classic cons/head/tail/uncons vocabulary.
//
// A List is a linear value. Append consumes its argument, Tail and Uncons consume their
// receiver. A consumed List must not be used again: every method called on it panics with an
// error wrapping ErrConsumed.
//
// A List is not safe for concurrent use.
package list

import (
	"iter"
	"strings"

	"github.com/gammazero/deque"

	"github.com/functils/functils/errors"
	"github.com/functils/functils/fn"
)

// ErrConsumed is the cause of the panic raised when a consumed list is used.
var ErrConsumed = errors.New("use of consumed list")

// List is an ordered sequence of elements. The zero value is an empty list ready to use.
type List[T any] struct {
	data     deque.Deque[T]
	consumed bool
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Of returns a list holding vals in the given order: Of(1, 2, 3) is [ 1 2 3 ].
func Of[T any](vals ...T) *List[T] {
	l := &List[T]{}

	for _, v := range vals {
		l.data.PushBack(v)
	}

	return l
}

// Cons inserts item at the front of the list.
func (l *List[T]) Cons(item T) {
	l.check("cons")

	l.data.PushFront(item)
}

// Append moves every element of other onto the back of l, keeping their order.
// other is consumed.
func (l *List[T]) Append(other *List[T]) {
	l.check("append")

	if l == other {
		panic(errors.Wrap(ErrConsumed, "append to itself"))
	}

	src := other.take("append")

	for src.data.Len() != 0 {
		l.data.PushBack(src.data.PopFront())
	}
}

// Null reports whether the list has no elements.
func (l *List[T]) Null() bool {
	l.check("null")

	return l.data.Len() == 0
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.check("len")

	return l.data.Len()
}

// Head removes and returns the first element, or None if the list is empty.
func (l *List[T]) Head() fn.Option[T] {
	l.check("head")

	if l.data.Len() == 0 {
		return fn.None[T]()
	}

	return fn.Some(l.data.PopFront())
}

// Tail consumes l and returns a list of all its elements but the first.
// The tail of an empty list is empty.
func (l *List[T]) Tail() *List[T] {
	rest := l.take("tail")
	if rest.data.Len() != 0 {
		rest.data.PopFront()
	}

	return rest
}

// Uncons consumes l and returns its first element paired with the rest of the list.
// It returns None if l is empty.
func (l *List[T]) Uncons() fn.Option[fn.Pair[T, *List[T]]] {
	rest := l.take("uncons")
	if rest.data.Len() == 0 {
		return fn.None[fn.Pair[T, *List[T]]]()
	}

	head := rest.data.PopFront()

	return fn.Some(fn.MakePair(head, rest))
}

// Clear removes all elements.
func (l *List[T]) Clear() {
	l.check("clear")

	l.data.Clear()
}

// Clone returns a shallow copy of l.
func (l *List[T]) Clone() *List[T] {
	l.check("clone")

	c := &List[T]{}

	for i := range l.data.Len() {
		c.data.PushBack(l.data.At(i))
	}

	return c
}

// All returns an iterator over the elements from front to back.
func (l *List[T]) All() iter.Seq[T] {
	l.check("all")

	return func(yield func(T) bool) {
		for i := range l.data.Len() {
			if !yield(l.data.At(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	l.check("backward")

	return func(yield func(T) bool) {
		for i := l.data.Len() - 1; i >= 0; i-- {
			if !yield(l.data.At(i)) {
				return
			}
		}
	}
}

// Slice returns the elements from front to back in a new slice.
func (l *List[T]) Slice() []T {
	l.check("slice")

	s := make([]T, l.data.Len())
	for i := range s {
		s[i] = l.data.At(i)
	}

	return s
}

// Consumed reports whether l was given up by Append, Tail or Uncons.
func (l *List[T]) Consumed() bool {
	return l.consumed
}

// String renders the list as "[ e1 e2 ... en ]", or "[]" when empty.
func (l *List[T]) String() string {
	l.check("string")

	var sb strings.Builder

	sb.WriteString("[")
	for i := range l.data.Len() {
		sb.WriteString(" ")
		writeElem(&sb, l.data.At(i))
	}

	if l.data.Len() != 0 {
		sb.WriteString(" ")
	}
	sb.WriteString("]")

	return sb.String()
}

// take moves the contents of l into a new list and marks l consumed.
func (l *List[T]) take(op string) *List[T] {
	l.check(op)

	rest := &List[T]{data: l.data}
	l.data = deque.Deque[T]{}
	l.consumed = true

	return rest
}

func (l *List[T]) check(op string) {
	if l.consumed {
		panic(errors.Wrap(ErrConsumed, op))
	}
}
