package util

import (
	"context"
	"time"
)

// CtxWithTimeout runs fn with a context derived from ctx that expires after dur.
// A nil ctx is treated as [context.Background]. It returns the error of fn.
func CtxWithTimeout(ctx context.Context, dur time.Duration, fn func(context.Context) error) error {
	_, err := WithTimeout(ctx, dur, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})

	return err
}

// WithTimeout is like CtxWithTimeout for functions that also return a value.
func WithTimeout[T any](
	ctx context.Context,
	dur time.Duration,
	fn func(context.Context) (T, error),
) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, dur)
	defer cancelTimeout()

	return fn(timeoutCtx)
}
