package tsp

import "iter"

// NextPermutation rearranges a into the lexicographically next permutation
// and reports whether one existed. On false, a is left as the last
// (descending) permutation.
//
// Complexity: O(len(a)) worst case, O(1) amortized.
func NextPermutation(a []int) bool {
	var (
		n = len(a)
		i = n - 2
		j = n - 1
	)
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, n-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}

	return true
}

// Permutations yields every permutation of 0..n-1 in lexicographic order.
// The yielded slice is reused between iterations; copy it to retain it.
// For n ≤ 0 a single empty permutation is yielded.
func Permutations(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n < 0 {
			n = 0
		}
		p := make([]int, n)
		for i := range p {
			p[i] = i
		}
		for {
			if !yield(p) {
				return
			}
			if !NextPermutation(p) {
				return
			}
		}
	}
}

// Factorial returns n! for 0 ≤ n ≤ MaxSupportedNodes.
func Factorial(n int) uint64 {
	var f uint64 = 1
	for i := 2; i <= n; i++ {
		f *= uint64(i)
	}

	return f
}
