package util //nolint:testpackage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxWithTimeout(t *testing.T) {
	t.Parallel()

	err := CtxWithTimeout(context.Background(), time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()

		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = CtxWithTimeout(nil, time.Second, func(ctx context.Context) error { //nolint:staticcheck
		_, ok := ctx.Deadline()
		assert.True(t, ok)

		return nil
	})
	assert.NoError(t, err)
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	v, err := WithTimeout(context.Background(), time.Second, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
