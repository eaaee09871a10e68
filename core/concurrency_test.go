// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tarjan/core"
)

// TestConcurrentAddNode ensures concurrent AddNode calls are safe and every
// node lands exactly once.
func TestConcurrentAddNode(t *testing.T) {
	g := core.NewGraph()
	const num = 200
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			if err := g.AddNode(core.Location{ID: fmt.Sprintf("V%d", id)}); err != nil {
				failed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	require.Zero(t, failed.Load())
	require.Equal(t, num, g.NodeCount())
}

// TestConcurrentReaders mimics parallel solver workers: many readers of a
// complete graph while one writer keeps adding spokes.
func TestConcurrentReaders(t *testing.T) {
	g := core.NewGraph()
	const n = 12
	for i := 0; i < n; i++ {
		require.NoError(t, g.AddNode(core.Location{ID: fmt.Sprintf("N%02d", i)}))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			require.NoError(t, g.SetEdge(fmt.Sprintf("N%02d", i), fmt.Sprintf("N%02d", j), float64(i+j), "bus"))
		}
	}
	require.NoError(t, g.AddNode(core.Location{ID: "hub"}))

	const readers = 50
	var (
		wg     sync.WaitGroup
		misses atomic.Int32
	)
	wg.Add(readers + 1)
	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i != j && !g.HasEdge(fmt.Sprintf("N%02d", i), fmt.Sprintf("N%02d", j)) {
						misses.Add(1)
					}
				}
			}
			_ = g.Edges()
		}()
	}
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_ = g.SetEdge("hub", fmt.Sprintf("N%02d", i), 1, "walking")
		}
	}()
	wg.Wait()

	require.Zero(t, misses.Load())
	require.Equal(t, n*(n-1)/2+n, g.EdgeCount())
}
