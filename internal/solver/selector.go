package solver

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/pattern"
)

// ErrInvalidWord is returned when a guess is not a member of the
// allowed-guess set Γ.
var ErrInvalidWord = errors.New("solver: guess is not a member of the allowed-guess set")

// entropyEpsilon absorbs floating-point summation-order noise when
// comparing two entropy values for the tie-break rule.
const entropyEpsilon = 1e-9

// candidateResult is a worker's local (best_entropy, best_guess) pair.
type candidateResult struct {
	word    pattern.Word
	entropy float64
	valid   bool
}

// ValidateGuess reports ErrInvalidWord if guess is not in allowed.
func ValidateGuess(guess pattern.Word, allowed lexicon.Set) error {
	if !allowed.Contains(guess) {
		return ErrInvalidWord
	}
	return nil
}

// Select picks the next guess from allowed given the current candidate
// state s, applying, in order:
//
//  1. turn-1 opener shortcut (initial == true and cfg.Opener set)
//  2. one-left shortcut (|S| == 1)
//  3. two-left shortcut (|S| == 2, lexicographically smaller)
//  4. parallel entropy scan over S (|S| <= cfg.PoolThreshold) or Γ
//
// budgetExceeded reports whether the time budget expired before any guess
// was evaluated; this is non-fatal and the guess degrades to the
// lexicographically smallest word in S.
func Select(ctx context.Context, allowed lexicon.Set, s *State, initial bool, cfg Config) (guess pattern.Word, budgetExceeded bool, err error) {
	if s.Size() == 0 {
		return pattern.Word{}, false, ErrInconsistentOracle
	}

	if initial {
		if opener, ok := cfg.OpenerWord(); ok {
			return opener, false, nil
		}
	}

	if s.Size() == 1 {
		return s.Words()[0], false, nil
	}

	if s.Size() == 2 {
		words := s.Words()
		a, b := words[0], words[1]
		if lexLess(b, a) {
			a = b
		}
		return a, false, nil
	}

	var pool []pattern.Word
	if s.Size() <= cfg.PoolThreshold {
		pool = s.Words()
	} else {
		pool = allowed.Words()
	}
	if len(pool) == 0 {
		return pattern.Word{}, false, ErrInvalidWord
	}

	best, evaluated := scanPool(ctx, pool, s, cfg)
	if !evaluated {
		return lexSmallest(s.Words()), true, nil
	}
	return best.word, false, nil
}

// scanPool partitions pool across cfg.MaxWorkers goroutines, each computing
// V(guess, s) for its slice and tracking a worker-local best pair, checked
// against a shared deadline before each guess (never mid-evaluation). The
// reducer combines worker results by max-entropy after they all return.
func scanPool(ctx context.Context, pool []pattern.Word, s *State, cfg Config) (candidateResult, bool) {
	deadline := time.Now().Add(cfg.TimeBudget)
	dctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	workers := cfg.workers()
	if workers > len(pool) {
		workers = len(pool)
	}
	chunk := (len(pool) + workers - 1) / workers

	results := make([]candidateResult, workers)
	g, gctx := errgroup.WithContext(dctx)

	for wi := 0; wi < workers; wi++ {
		start := wi * chunk
		if start >= len(pool) {
			break
		}
		end := start + chunk
		if end > len(pool) {
			end = len(pool)
		}

		wi, slice := wi, pool[start:end]
		g.Go(func() error {
			var best candidateResult
			for _, guess := range slice {
				select {
				case <-gctx.Done():
					results[wi] = best
					return nil
				default:
				}
				h := Entropy(guess, s)
				if !best.valid || better(h, guess, best.entropy, best.word, s) {
					best = candidateResult{word: guess, entropy: h, valid: true}
				}
			}
			results[wi] = best
			return nil
		})
	}
	_ = g.Wait()

	var best candidateResult
	for _, r := range results {
		if !r.valid {
			continue
		}
		if !best.valid || better(r.entropy, r.word, best.entropy, best.word, s) {
			best = r
		}
	}
	return best, best.valid
}

// better reports whether candidate (h, w) beats the current best under a
// deterministic tie-break: higher entropy wins; on a tie, a guess that is
// itself a remaining candidate answer wins; otherwise lexicographically
// smaller wins.
func better(candEntropy float64, cand pattern.Word, bestEntropy float64, best pattern.Word, s *State) bool {
	if candEntropy > bestEntropy+entropyEpsilon {
		return true
	}
	if candEntropy < bestEntropy-entropyEpsilon {
		return false
	}
	candInS, bestInS := s.Contains(cand), s.Contains(best)
	if candInS != bestInS {
		return candInS
	}
	return lexLess(cand, best)
}

func lexLess(a, b pattern.Word) bool {
	return a.String() < b.String()
}

func lexSmallest(words []pattern.Word) pattern.Word {
	return minBy(words, func(w pattern.Word) string { return w.String() })
}
