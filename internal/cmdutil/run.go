// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunOrdered applies work to every job on up to threads goroutines and hands
// results to send in job order. At most threads results are pending at any
// time, so a slow consumer throttles the workers.
//
// It returns the number of results sent and the first error from work, send,
// or ctx. Jobs not yet started when an error occurs are skipped.
func RunOrdered[J, T any](
	ctx context.Context,
	threads int,
	jobs []J,
	work func(context.Context, J) (T, error),
	send func(T) error,
) (int, error) {
	if threads < 1 {
		threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	slots := make([]chan T, len(jobs))
	for i := range slots {
		slots[i] = make(chan T, 1)
	}
	window := make(chan struct{}, threads)

	g.Go(func() error {
		for i, j := range jobs {
			select {
			case window <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			g.Go(func() error {
				v, err := work(gctx, j)
				if err != nil {
					return err
				}
				slots[i] <- v
				return nil
			})
		}
		return nil
	})

	sent := 0
consume:
	for i := range slots {
		select {
		case v := <-slots[i]:
			<-window
			if err := send(v); err != nil {
				cancel()
				_ = g.Wait()
				return sent, err
			}
			sent++
		case <-gctx.Done():
			break consume
		}
	}
	if err := g.Wait(); err != nil {
		return sent, err
	}
	return sent, ctx.Err()
}
