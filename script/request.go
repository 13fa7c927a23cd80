package script

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/functils/functils/errors"
	"github.com/functils/functils/list"
)

//nolint:gochecknoglobals
var validate = validator.New(validator.WithRequiredStructEnabled())

// Request describes a script together with the list it starts from.
// It is the body of the server's /eval endpoint and the layout of script files.
type Request struct {
	// Name selects a stored list. Items are used only when it does not exist yet.
	Name string `json:"name,omitempty" validate:"omitempty,max=128,printascii" yaml:"name,omitempty"`
	// Items are the initial elements, front first.
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
	// Script is the program text. It is parsed and appended to Ops.
	Script string `json:"script,omitempty" yaml:"script,omitempty"`
	// Ops are already parsed operations.
	Ops []Op `json:"ops,omitempty" validate:"dive" yaml:"ops,omitempty"`
}

// Validate checks the request shape and parses Script into Ops.
func (r *Request) Validate() error {
	err := validate.Struct(r)
	if err != nil {
		return errors.Wrap(err, "validate")
	}

	if r.Script != "" {
		ops, err := Parse(r.Script)
		if err != nil {
			return errors.Wrap(err, "parse script")
		}

		r.Ops = append(r.Ops, ops...)
		r.Script = ""
	}

	if len(r.Ops) == 0 {
		return errors.New("no operations")
	}

	for i, op := range r.Ops {
		err := op.Check()
		if err != nil {
			return errors.Wrapf(err, "op #%d", i+1)
		}
	}

	return nil
}

// InitialList returns a new list holding Items.
func (r *Request) InitialList() *list.List[string] {
	return list.Of(r.Items...)
}

// LoadFile reads a YAML script file:
//
//	items: [a, b]
//	script: |
//	  cons x
//	  show
//	ops:
//	  - op: head
func LoadFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	var req Request

	err = yaml.Unmarshal(data, &req)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	return &req, nil
}
