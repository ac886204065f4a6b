package solver

import (
	"math"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

// Entropy computes the expected Shannon information gain, in bits, of
// playing guess against the candidate distribution S, assumed uniform.
// Partitions S into buckets keyed by the pattern code Feedback(guess, s)
// would produce for each s in S.
//
// H(guess | S) = − Σ (n_k / N) · log2(n_k / N), summing only over buckets
// with n_k > 0; log2(0) is never evaluated.
func Entropy(guess pattern.Word, s *State) float64 {
	n := s.Size()
	if n <= 1 {
		return 0
	}

	var buckets [pattern.NumCodes]int
	for _, answer := range s.Words() {
		buckets[pattern.EncodeFeedback(guess, answer)]++
	}

	total := float64(n)
	var h float64
	for _, count := range buckets {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}
