// Package tsp finds the minimum-weight closed route that starts and ends at a
// home node and visits every other node of a core.Graph exactly once.
//
// Two exact engines are available:
//
//   - BruteForce (default) enumerates every ordering of the non-home nodes in
//     lexicographic order of their graph insertion indices and keeps the
//     first ordering whose total is strictly smaller than the best so far.
//     Complexity: O(N!·N) time, O(N) memory, N = |V|-1.
//
//   - HeldKarp solves the same problem with the bitmask dynamic program.
//     Complexity: O(N²·2ᴺ) time, O(N·2ᴺ) memory. The optimal total matches
//     BruteForce; among equal-total routes the chosen ordering may differ.
//
// Ties:
//
//	Route totals are rounded to an absolute 1e-9 before comparison, so a cycle
//	and its reverse compare equal and the earlier ordering wins. The strict
//	'<' applies to rounded totals: an ordering cheaper by less than 5e-10
//	may lose to an earlier one, and Route.Total is the rounded sum.
//
// Parallelism:
//
//	WithWorkers(k) splits the BruteForce enumeration into N blocks by the
//	first visited node and searches them on up to k goroutines. Block results
//	are reduced in block order, so the returned route is identical to the
//	sequential one.
//
// Errors:
//
//	ErrNilGraph     - g is nil.
//	ErrMissingHome  - home is not a node of g.
//	ErrMissingEdge  - a consecutive pair of some candidate route has no edge.
//	ErrTooManyNodes - N exceeds Options.MaxNodes.
//	ErrBadAlgorithm - unknown Algorithm value.
//
// Cancellation via WithContext is observed every 4096 evaluated routes.
package tsp
