// File: exact.go
// Role: Held–Karp dynamic program over subsets of the non-home nodes.
//
// dp[mask*N+j] is the minimum weight of a path that leaves home, visits
// exactly the nodes in mask and ends at j (bit j set in mask). Closing the
// cycle adds the edge j→home. Predecessors are scanned in ascending index
// with a strict '<', so the reconstruction is deterministic. The first
// candidate of every state seeds it, so overflowing sums still reconstruct a
// complete ordering.
//
// The graph must be complete: brute force fails on any absent pair, and the
// same outcome is reported here before the tables are allocated.
//
// Complexity: O(N²·2ᴺ) time, O(N·2ᴺ) memory.
package tsp

import (
	"context"
	"math"
)

func heldKarp(ctx context.Context, ws *weights) (Route, error) {
	if err := ws.complete(); err != nil {
		return Route{}, err
	}

	var (
		n      = ws.n // home included
		m      = n - 1
		full   = 1<<m - 1
		dp     = make([]float64, (full+1)*m)
		parent = make([]int, (full+1)*m)
		inf    = math.Inf(1)
		mask   int
		j      int
		k      int
	)
	for k = range dp {
		dp[k] = inf
		parent[k] = -1
	}
	// Base: home → j.
	for j = 0; j < m; j++ {
		dp[(1<<j)*m+j] = ws.w[j+1]
	}

	for mask = 1; mask <= full; mask++ {
		if mask&(progressEvery-1) == 0 {
			if err := ctx.Err(); err != nil {
				return Route{}, err
			}
		}
		for j = 0; j < m; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prev := mask ^ (1 << j)
			if prev == 0 {
				continue
			}
			for k = 0; k < m; k++ {
				if prev&(1<<k) == 0 {
					continue
				}
				cand := dp[prev*m+k] + ws.w[(k+1)*n+j+1]
				if parent[mask*m+j] < 0 || cand < dp[mask*m+j] {
					dp[mask*m+j] = cand
					parent[mask*m+j] = k
				}
			}
		}
	}

	// Close the cycle.
	var (
		best = inf
		last = -1
	)
	for j = 0; j < m; j++ {
		total := dp[full*m+j] + ws.w[(j+1)*n]
		if last < 0 || total < best {
			best = total
			last = j
		}
	}

	// Reconstruct the ordering backwards.
	perm := make([]int, m)
	mask = full
	j = last
	for k = m - 1; k >= 0; k-- {
		perm[k] = j
		p := parent[mask*m+j]
		mask ^= 1 << j
		j = p
	}

	total, err := ws.cycle(perm)
	if err != nil {
		return Route{}, err
	}

	return ws.route(perm, total), nil
}
