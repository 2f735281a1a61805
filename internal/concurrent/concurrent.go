// Package concurrent provides the two shared-memory data-parallel
// primitives the tipping components build on: an order-preserving parallel
// map and a worker-local fold/merge reduction. Both are thin wrappers
// around github.com/sourcegraph/conc, promoted here from an indirect to a
// direct dependency because two packages in this module (record and parse)
// need exactly this bounded-worker-pool shape.
package concurrent

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/pool"
)

// Workers normalizes a caller-supplied worker count: non-positive values
// fall back to runtime.GOMAXPROCS(0), the same default parse.Options uses.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// MapOrdered applies fn to every item in items using up to workers
// goroutines and returns the results in input order. ctx is checked at the
// start of each task; once ctx is done, remaining tasks are skipped and
// their result slots are left zero-valued — callers that need to detect
// cancellation should check ctx.Err() themselves after the call returns.
func MapOrdered[T, R any](ctx context.Context, items []T, workers int, fn func(int, T) R) []R {
	indices := make([]int, len(items))
	for i := range items {
		indices[i] = i
	}
	mapper := iter.Mapper[int, R]{MaxGoroutines: Workers(workers)}
	return mapper.Map(indices, func(i *int) R {
		var zero R
		if ctx.Err() != nil {
			return zero
		}
		return fn(*i, items[*i])
	})
}

// Fold reduces items down to a single accumulator of type M using up to
// workers goroutines, each folding its own share of items into a
// worker-local accumulator built by zero and extended by step, then merges
// all worker-local accumulators pairwise with merge. merge should always
// absorb the smaller accumulator into the larger one, so the final pass
// costs O(workers) merges rather than O(len(items)).
func Fold[T, M any](ctx context.Context, items []T, workers int, zero func() M, step func(M, T) M, merge func(M, M) M) M {
	n := Workers(workers)
	if n > len(items) && len(items) > 0 {
		n = len(items)
	}
	if n <= 0 {
		n = 1
	}

	p := pool.NewWithResults[M]().WithMaxGoroutines(n)
	chunks := chunkify(items, n)
	for _, chunk := range chunks {
		chunk := chunk
		p.Go(func() M {
			acc := zero()
			for _, item := range chunk {
				if ctx.Err() != nil {
					break
				}
				acc = step(acc, item)
			}
			return acc
		})
	}

	partials := p.Wait()
	if len(partials) == 0 {
		return zero()
	}
	acc := partials[0]
	for _, partial := range partials[1:] {
		acc = merge(acc, partial)
	}
	return acc
}

func chunkify[T any](items []T, n int) [][]T {
	if n <= 0 {
		return [][]T{items}
	}
	size := (len(items) + n - 1) / n
	if size == 0 {
		return nil
	}
	chunks := make([][]T, 0, n)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
