package solver

import "golang.org/x/exp/constraints"

// minBy returns the element of items minimizing keyFunc, generalized from
// a worker-local best-value reduction pattern used elsewhere in the
// corpus for parallel scans; here it drives the single-threaded
// lexicographic fallback Select uses when the time budget expires before
// any guess has been evaluated.
func minBy[T any, K constraints.Ordered](items []T, keyFunc func(T) K) T {
	best := items[0]
	bestKey := keyFunc(best)
	for _, it := range items[1:] {
		if k := keyFunc(it); k < bestKey {
			bestKey = k
			best = it
		}
	}
	return best
}
