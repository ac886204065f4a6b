package oracle

import (
	"context"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

// Simulator is an in-process Adapter that knows the hidden answer and
// scores every submitted guess via pattern.Feedback. Used for benchmark
// runs and the CLI's standalone simulated-game mode.
type Simulator struct {
	answer pattern.Word
}

// NewSimulator returns a Simulator that will score every guess against
// answer.
func NewSimulator(answer pattern.Word) *Simulator {
	return &Simulator{answer: answer}
}

// Submit computes F(guess, answer). Never fails; ctx is honored only in
// that a cancelled context still returns the (pure, instantaneous) result,
// matching F's contract of never erroring.
func (s *Simulator) Submit(_ context.Context, guess pattern.Word) (pattern.Pattern, error) {
	return pattern.Feedback(guess, s.answer), nil
}

// Answer returns the hidden word this simulator scores against.
func (s *Simulator) Answer() pattern.Word { return s.answer }
