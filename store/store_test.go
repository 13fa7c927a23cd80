package store //nolint:testpackage

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/functils/functils/config"
	"github.com/functils/functils/list"
	"github.com/functils/functils/util"
)

// testStore runs the behavior shared by every Store implementation.
// prefix keeps list names of parallel runs apart.
func testStore(t *testing.T, s Store, prefix string) {
	t.Helper()

	ctx := context.Background()
	a, b := prefix+"a", prefix+"b"

	_, err := s.Load(ctx, a)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Load(ctx, "")
	require.ErrorIs(t, err, ErrInvalidName)
	require.ErrorIs(t, s.Save(ctx, "", list.New[string]()), ErrInvalidName)
	require.ErrorIs(t, s.Delete(ctx, ""), ErrInvalidName)

	l := list.Of("1", "2", "3")
	require.NoError(t, s.Save(ctx, a, l))
	require.NoError(t, s.Save(ctx, b, list.New[string]()))
	assert.False(t, l.Consumed())

	// the store keeps its own copy
	l.Cons("0")

	got, err := s.Load(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "[ 1 2 3 ]", got.String())

	got.Head()
	again, err := s.Load(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Len())

	empty, err := s.Load(ctx, b)
	require.NoError(t, err)
	assert.True(t, empty.Null())

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Subset(t, names, []string{a, b})

	require.NoError(t, s.Save(ctx, a, list.Of("x")))
	got, err = s.Load(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "[ x ]", got.String())

	require.NoError(t, s.Delete(ctx, a))
	require.ErrorIs(t, s.Delete(ctx, a), ErrNotFound)
	require.NoError(t, s.Delete(ctx, b))

	_, err = s.Load(ctx, a)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory(t *testing.T) {
	t.Parallel()

	s := NewMemory()
	testStore(t, s, "")

	names, err := s.Names(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryConcurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemory()

	var wg sync.WaitGroup
	for _, name := range []string{"p", "q", "r", "s"} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 50 {
				assert.NoError(t, s.Save(ctx, name, list.Of(name)))
				_, err := s.Load(ctx, name)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	names, err := s.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q", "r", "s"}, names)
}

func TestMongo(t *testing.T) {
	t.Parallel()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI is not set")
	}

	ctx := context.Background()

	client, err := Connect(ctx, uri, ConnectOptions{})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = util.CtxWithTimeout(ctx, config.DisconnectTimeout, client.Disconnect)
	})

	testStore(t, NewMongo(client), uuid.NewString()+"-")
}
