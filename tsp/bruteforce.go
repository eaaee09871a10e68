// File: bruteforce.go
// Role: exhaustive search over all orderings of the non-home nodes.
//
// Stage 1 splits the N! orderings into N blocks by the first visited node;
// block f holds, in lexicographic order, every ordering that starts with f.
// Stage 2 searches blocks, sequentially or on an errgroup. Stage 3 reduces
// block results in block order keeping the strictly smaller total.
//
// Determinism:
//   - Inside a block the first ordering seeds the incumbent, so an overflowing
//     total still yields a complete route.
//   - Inside a block the first ordering reaching the block minimum wins.
//   - The reduction prefers the lower block on equal totals, so the result
//     equals the first global ordering reaching the global minimum.
package tsp

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// blockResult is the best ordering found within one block.
type blockResult struct {
	perm  []int
	total float64
}

// bruteForce holds the read-only inputs shared by all block searches.
type bruteForce struct {
	ws       *weights
	total    uint64 // N!
	done     atomic.Uint64
	progress func(done, total uint64)
}

func newBruteForce(ws *weights, progress func(done, total uint64)) *bruteForce {
	return &bruteForce{
		ws:       ws,
		total:    Factorial(ws.n - 1),
		progress: progress,
	}
}

// run searches all blocks with up to workers goroutines and reduces them.
func (s *bruteForce) run(ctx context.Context, workers int) (Route, error) {
	var (
		blocks  = s.ws.n - 1
		results = make([]blockResult, blocks)
		f       int
	)

	if workers <= 1 {
		for f = 0; f < blocks; f++ {
			res, err := s.block(ctx, f)
			if err != nil {
				return Route{}, err
			}
			results[f] = res
		}
	} else {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for f := 0; f < blocks; f++ {
			eg.Go(func() error {
				res, err := s.block(gctx, f)
				if err != nil {
					return err
				}
				results[f] = res // each goroutine owns its slot

				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return Route{}, err
		}
	}

	best := results[0]
	for f = 1; f < blocks; f++ {
		if results[f].total < best.total {
			best = results[f]
		}
	}

	return s.ws.route(best.perm, best.total), nil
}

// block enumerates orderings whose first node is f.
func (s *bruteForce) block(ctx context.Context, f int) (blockResult, error) {
	var (
		n     = s.ws.n - 1
		perm  = make([]int, n)
		res   blockResult
		steps uint64
		k     = 1
		i     int
	)
	if err := ctx.Err(); err != nil {
		return blockResult{}, err
	}

	perm[0] = f
	for i = 0; i < n; i++ {
		if i != f {
			perm[k] = i
			k++
		}
	}

	for {
		total, err := s.ws.cycle(perm)
		if err != nil {
			return blockResult{}, err
		}
		if res.perm == nil || total < res.total {
			res.total = total
			res.perm = append(res.perm[:0], perm...)
		}

		steps++
		if steps&(progressEvery-1) == 0 {
			if err = ctx.Err(); err != nil {
				return blockResult{}, err
			}
			s.report(progressEvery)
		}
		if !NextPermutation(perm[1:]) {
			break
		}
	}
	s.report(steps & (progressEvery - 1))

	return res, nil
}

// report adds delta evaluated routes and notifies the progress hook.
func (s *bruteForce) report(delta uint64) {
	done := s.done.Add(delta)
	if s.progress != nil {
		s.progress(done, s.total)
	}
}
