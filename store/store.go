// Package store keeps named lists of strings.
package store

import (
	"context"

	"github.com/functils/functils/errors"
	"github.com/functils/functils/list"
)

var (
	// ErrNotFound is returned when no list has the requested name.
	ErrNotFound = errors.New("list not found")
	// ErrInvalidName is returned for an empty list name.
	ErrInvalidName = errors.New("invalid list name")
)

// Store saves and loads named lists.
//
// Load always returns a list owned by the caller. Save does not consume its argument.
type Store interface {
	Load(ctx context.Context, name string) (*list.List[string], error)
	Save(ctx context.Context, name string, l *list.List[string]) error
	Delete(ctx context.Context, name string) error
	Names(ctx context.Context) ([]string, error)
}

func checkName(name string) error {
	if name == "" {
		return ErrInvalidName
	}

	return nil
}
