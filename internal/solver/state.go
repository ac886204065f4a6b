package solver

import (
	"errors"

	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/pattern"
)

// ErrInconsistentOracle is returned by Filter when no remaining candidate
// is consistent with the observed pattern — a truthful oracle can never
// produce this outcome, so its appearance signals a non-Wordle judge or a
// bug in the caller.
var ErrInconsistentOracle = errors.New("solver: no candidate answers consistent with observed pattern")

// State is the live candidate-answer set S: the subset of Ω still
// consistent with every pattern observed so far. It shrinks monotonically
// and is never mutated in place — Filter returns a new State.
type State struct {
	words []pattern.Word
}

// Init returns S₀ = Ω, the full answer set at game start.
func Init(answers lexicon.Set) *State {
	words := answers.Words()
	cp := make([]pattern.Word, len(words))
	copy(cp, words)
	return &State{words: cp}
}

// Size reports |S|.
func (s *State) Size() int { return len(s.words) }

// Words returns S's members. The returned slice must not be mutated.
func (s *State) Words() []pattern.Word { return s.words }

// Contains reports whether w ∈ S. Linear scan, with no separate index; the
// guess selector calls it only when two guesses tie on entropy.
func (s *State) Contains(w pattern.Word) bool {
	for _, c := range s.words {
		if c == w {
			return true
		}
	}
	return false
}

// Filter retains w ∈ S iff Feedback(guess, w) == observed, returning the
// narrowed State. |S'| == 0 is reported as ErrInconsistentOracle rather
// than returned as an empty State.
func (s *State) Filter(guess pattern.Word, observed pattern.Pattern) (*State, error) {
	code := observed.Encode()
	var out []pattern.Word
	for _, w := range s.words {
		if pattern.EncodeFeedback(guess, w) == code {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, ErrInconsistentOracle
	}
	return &State{words: out}, nil
}
