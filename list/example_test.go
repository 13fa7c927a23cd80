package list_test

import (
	"fmt"

	"github.com/functils/functils/list"
)

func Example() {
	l := list.New[int]()
	l.Cons(1)
	l.Cons(2)
	l.Cons(3)
	fmt.Println(l)

	l.Append(list.Of(7, 8))
	fmt.Println(l, l.Len())

	fmt.Println(l.Head())
	fmt.Println(l.Tail())

	// Output:
	// [ 3 2 1 ]
	// [ 3 2 1 7 8 ] 5
	// Some(3)
	// [ 1 7 8 ]
}

func ExampleList_Uncons() {
	p, ok := list.Of("a", "b", "c").Uncons().Get()
	fmt.Println(p.First(), p.Second(), ok)

	fmt.Println(list.New[string]().Uncons())

	// Output:
	// a [ b c ] true
	// None
}
