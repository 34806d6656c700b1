package task

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Join runs fns concurrently and waits for all of them. A failing branch
// does not cancel the others: every branch sees the caller's ctx. When any
// branch fails, the error of the earliest failing branch in argument order
// is returned once all have finished.
func Join(ctx context.Context, fns ...func(ctx context.Context) error) error {
	errs := make([]error, len(fns))

	// Plain Group, not WithContext: siblings must run to completion.
	var g errgroup.Group
	for i, fn := range fns {
		g.Go(func() error {
			errs[i] = fn(ctx)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
