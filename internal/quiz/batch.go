package quiz

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// runOrdered calls fn for every index in [0, n). With workers > 1 the calls
// run concurrently; fn must only write to its own index's slot.
func runOrdered(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			fn(i)
			return nil
		})
	}
	return g.Wait()
}
