package client

import (
	"context"
	"fmt"
	"time"
)

// DefaultLatency is the simulated round-trip of every remote operation.
const DefaultLatency = 2 * time.Second

// sleep blocks for d or until ctx is done. The timer is released on both
// paths.
func sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	}
}
