// Package core holds the goroutine fan-out helpers used at startup.
package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"raymaze/internal/mathutil"
)

// ParallelTry runs fn over items on up to NumCPU workers and returns the
// results in item order. The first failure stops workers from picking up
// further items. The returned error is the failure with the lowest item
// index, or ctx.Err() when the caller cancelled and nothing failed.
func ParallelTry[T any, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	inner, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	errs := make([]error, len(items))
	var next atomic.Int64
	var wg sync.WaitGroup

	for w := mathutil.IntMin(runtime.NumCPU(), len(items)); w > 0; w-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for inner.Err() == nil {
				i := int(next.Add(1) - 1)
				if i >= len(items) {
					return
				}
				r, err := fn(inner, items[i])
				if err != nil {
					errs[i] = err
					cancel()
					return
				}
				results[i] = r
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
