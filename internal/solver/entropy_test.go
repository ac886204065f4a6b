package solver

import (
	"math"
	"testing"

	"github.com/wordlelab/entropysolver/internal/lexicon"
)

func TestEntropyZeroWhenOneOrFewerCandidates(t *testing.T) {
	s := Init(lexicon.NewSet(words(t, "CRANE")))
	guess := words(t, "SALET")[0]
	if h := Entropy(guess, s); h != 0 {
		t.Errorf("Entropy() = %v, want 0 for |S| <= 1", h)
	}
}

func TestEntropyNonNegative(t *testing.T) {
	s := Init(testOmega(t))
	for _, guess := range append(testOmega(t).Words(), words(t, "SALET", "STARE", "ROUTE")...) {
		if h := Entropy(guess, s); h < 0 {
			t.Errorf("Entropy(%s) = %v, want >= 0", guess, h)
		}
	}
}

func TestEntropyZeroWhenGuessDoesNotDiscriminate(t *testing.T) {
	// A guess sharing no letters with any candidate produces the same
	// all-ABSENT pattern for every candidate: zero information gain.
	s := Init(lexicon.NewSet(words(t, "CRANE", "TRACE")))
	guess := words(t, "BLIMP")[0]
	if h := Entropy(guess, s); h != 0 {
		t.Errorf("Entropy() = %v, want 0 when guess never discriminates candidates", h)
	}
}

func TestEntropyPositiveWhenGuessDiscriminates(t *testing.T) {
	s := Init(testOmega(t))
	guess := words(t, "GRADE")[0]
	h := Entropy(guess, s)
	if h <= 0 {
		t.Errorf("Entropy(GRADE) = %v, want > 0", h)
	}
	maxPossible := math.Log2(float64(s.Size()))
	if h > maxPossible+entropyEpsilon {
		t.Errorf("Entropy(GRADE) = %v exceeds log2(|S|) = %v", h, maxPossible)
	}
}

func TestEntropyMatchesManualHistogram(t *testing.T) {
	// Ω = {CRANE, CRATE, CRAVE, CRAZE, GRADE}; guess GRADE only tells R, A,
	// E apart from D and G's absence — CRANE, CRATE, CRAVE and CRAZE all
	// produce the identical AEEAE pattern against GRADE (they differ only
	// in the letters at guess positions 0 and 3, both of which come back
	// ABSENT), leaving GRADE itself as the sole EEEEE bucket. Two buckets
	// of size 4 and 1 give entropy -(0.8*log2(0.8) + 0.2*log2(0.2)).
	s := Init(testOmega(t))
	guess := words(t, "GRADE")[0]
	h := Entropy(guess, s)
	want := -(0.8*math.Log2(0.8) + 0.2*math.Log2(0.2))
	if math.Abs(h-want) > 1e-9 {
		t.Errorf("Entropy(GRADE) = %v, want %v", h, want)
	}
}
