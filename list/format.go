package list

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

func writeElem(w io.Writer, v any) {
	fmt.Fprint(w, v) //nolint:errcheck
}

// GoString renders the list for the %#v verb, e.g. list.Of[int](1, 2).
func (l *List[T]) GoString() string {
	l.check("gostring")

	var sb strings.Builder

	fmt.Fprintf(&sb, "list.Of[%s](", reflect.TypeFor[T]())
	for i := range l.data.Len() {
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#v", l.data.At(i))
	}
	sb.WriteString(")")

	return sb.String()
}
