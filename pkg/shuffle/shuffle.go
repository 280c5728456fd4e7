// Package shuffle provides injectable permutation functions so that callers
// presenting randomised item orders can be tested deterministically.
package shuffle

import "math/rand/v2"

// Func returns a permutation of [0, n). Implementations must return a slice
// of length n containing every index exactly once.
type Func func(n int) []int

// Random is a uniform Fisher-Yates permutation.
func Random(n int) []int {
	perm := Identity(n)
	for i := n - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Identity returns indices in their original order.
func Identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// Reverse returns indices back to front. Handy in tests that need a
// deterministic non-identity order.
func Reverse(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	return perm
}

// Apply rearranges items according to fn. The input slice is not modified.
func Apply[T any](fn Func, items []T) []T {
	perm := fn(len(items))
	out := make([]T, len(items))
	for i, j := range perm {
		out[i] = items[j]
	}
	return out
}
