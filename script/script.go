// Package script runs small line-oriented programs against a list of strings.
//
// Each line (or each ';'-separated part of a line) holds one operation:
//
//	cons X          insert X at the front
//	append X Y ...  append the list [ X Y ... ]
//	head            remove the front element and print Some(x) or None
//	tail            drop the front element
//	uncons          print Some((x, rest)) or None and continue with rest
//	null            print true if the list is empty
//	len             print the number of elements
//	show            print the list
//	clear           remove every element
//
// Blank lines and lines starting with '#' are ignored.
package script

import (
	"strings"

	"github.com/functils/functils/errors"
)

var (
	// ErrUnknownOp is returned for an operation name that is not supported.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrArity is returned when an operation gets the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrTooManyOps is returned for scripts longer than the configured limit.
	ErrTooManyOps = errors.New("too many operations")
)

// Kind names an operation.
type Kind string

// Supported operations.
const (
	OpCons   Kind = "cons"
	OpAppend Kind = "append"
	OpHead   Kind = "head"
	OpTail   Kind = "tail"
	OpUncons Kind = "uncons"
	OpNull   Kind = "null"
	OpLen    Kind = "len"
	OpShow   Kind = "show"
	OpClear  Kind = "clear"
)

// Op is a single operation with its arguments.
type Op struct {
	Kind Kind     `json:"op"             validate:"required" yaml:"op"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

func (o Op) String() string {
	if len(o.Args) == 0 {
		return string(o.Kind)
	}

	return string(o.Kind) + " " + strings.Join(o.Args, " ")
}

// Check verifies the operation name and its arity.
func (o Op) Check() error {
	switch o.Kind {
	case OpCons:
		if len(o.Args) != 1 {
			return errors.Wrapf(ErrArity, "%s: want 1, got %d", o.Kind, len(o.Args))
		}

	case OpAppend:

	case OpHead, OpTail, OpUncons, OpNull, OpLen, OpShow, OpClear:
		if len(o.Args) != 0 {
			return errors.Wrapf(ErrArity, "%s: want 0, got %d", o.Kind, len(o.Args))
		}

	default:
		return errors.Wrapf(ErrUnknownOp, "%q", o.Kind)
	}

	return nil
}

// ParseOp parses a single operation such as "cons 5".
func ParseOp(s string) (Op, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Op{}, errors.Wrap(ErrUnknownOp, "empty operation")
	}

	op := Op{Kind: Kind(strings.ToLower(fields[0]))}
	if len(fields) > 1 {
		op.Args = fields[1:]
	}

	err := op.Check()
	if err != nil {
		return Op{}, err
	}

	return op, nil
}

// Parse parses a whole script.
func Parse(text string) ([]Op, error) {
	var ops []Op

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		for part := range strings.SplitSeq(line, ";") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			op, err := ParseOp(part)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}

			ops = append(ops, op)
		}
	}

	return ops, nil
}
