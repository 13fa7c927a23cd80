package store

import (
	"context"
	"slices"
	"sync"

	"github.com/functils/functils/errors"
	"github.com/functils/functils/list"
)

// Memory is a Store kept in process memory. Lists are held in their BSON encoding so that
// callers never share elements with the store.
type Memory struct {
	mu    sync.RWMutex
	lists map[string]encoded
}

type encoded struct {
	typ  byte
	data []byte
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{lists: make(map[string]encoded)}
}

func (m *Memory) Load(_ context.Context, name string) (*list.List[string], error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	enc, ok := m.lists[name]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}

	l := list.New[string]()

	err := l.UnmarshalBSONValue(enc.typ, enc.data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %q", name)
	}

	return l, nil
}

func (m *Memory) Save(_ context.Context, name string, l *list.List[string]) error {
	if err := checkName(name); err != nil {
		return err
	}

	typ, data, err := l.MarshalBSONValue()
	if err != nil {
		return errors.Wrapf(err, "encode %q", name)
	}

	m.mu.Lock()
	m.lists[name] = encoded{typ: typ, data: data}
	m.mu.Unlock()

	return nil
}

func (m *Memory) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lists[name]; !ok {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}

	delete(m.lists, name)

	return nil
}

func (m *Memory) Names(context.Context) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.lists))
	for name := range m.lists {
		names = append(names, name)
	}
	m.mu.RUnlock()

	slices.Sort(names)

	return names, nil
}
