// Package orchestrator drives the turn loop: pick a guess, submit it to
// an oracle, ingest feedback, narrow the candidate state, repeat until
// win, loss, or a fatal error. It is the Turn Orchestrator (O).
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/oracle"
	"github.com/wordlelab/entropysolver/internal/pattern"
	"github.com/wordlelab/entropysolver/internal/solver"
)

// Outcome is a game's terminal state.
type Outcome string

const (
	Win  Outcome = "WIN"
	Loss Outcome = "LOSS"
)

// ErrTurnLimitReached signals the loop hit cfg.MaxTurns without a win. It
// is never returned as a Go error — the caller sees it only as a LOSS
// outcome recorded in the Report.
var ErrTurnLimitReached = errors.New("orchestrator: turn limit reached without a win")

// Turn is one (guess, pattern) exchange plus the metrics a run report
// needs: turn duration, |S| after filtering, budget exceeded.
type Turn struct {
	Index          int
	Guess          pattern.Word
	Pattern        pattern.Pattern
	CandidatesLeft int
	Duration       time.Duration
	BudgetExceeded bool
}

// History is the append-only, per-game sequence of turns.
type History []Turn

// Report is what Play returns on every terminal state.
type Report struct {
	Outcome Outcome
	History History
	Answer  pattern.Word // only meaningful for Win; zero value otherwise
}

// Orchestrator wires the candidate state machine, guess selector and
// oracle adapter together and drives one game to completion.
type Orchestrator struct {
	Allowed lexicon.Set
	Answers lexicon.Set
	Config  solver.Config
	Oracle  oracle.Adapter
}

// New constructs an Orchestrator. oracle must not be nil; cfg is used
// as-is (callers wanting defaults should start from solver.DefaultConfig()
// or solver.ConfigFromEnv()).
func New(allowed, answers lexicon.Set, cfg solver.Config, adapter oracle.Adapter) *Orchestrator {
	return &Orchestrator{Allowed: allowed, Answers: answers, Config: cfg, Oracle: adapter}
}

// Play runs the INIT -> AWAIT_GUESS -> AWAIT_FEEDBACK -> {WIN, LOSS, ERROR}
// state machine to completion. error is non-nil only for the ERROR
// terminal state (oracle failure, an inconsistent filter, or a Select
// error such as ErrInvalidWord for an empty allowed-guess pool); WIN and LOSS
// both return (Report, nil), distinguished by Report.Outcome.
func (o *Orchestrator) Play(ctx context.Context) (Report, error) {
	s := solver.Init(o.Answers)
	var history History

	for turn := 0; turn < o.Config.MaxTurns; turn++ {
		turnStart := time.Now()

		guess, exceeded, err := solver.Select(ctx, o.Allowed, s, turn == 0, o.Config)
		if err != nil {
			return Report{Outcome: Loss, History: history}, fmt.Errorf("orchestrator: selecting guess on turn %d: %w", turn, err)
		}
		if exceeded {
			log.Warn().Int("turn", turn).Str("guess", guess.String()).Msg("guess selection budget exceeded, degraded to lexicographic fallback")
		}

		observed, err := o.Oracle.Submit(ctx, guess)
		if err != nil {
			return Report{Outcome: Loss, History: history}, fmt.Errorf("orchestrator: submitting guess %s: %w", guess, err)
		}

		duration := time.Since(turnStart)

		if observed.IsWin() {
			history = append(history, Turn{
				Index: turn, Guess: guess, Pattern: observed,
				CandidatesLeft: 1, Duration: duration, BudgetExceeded: exceeded,
			})
			return Report{Outcome: Win, History: history, Answer: guess}, nil
		}

		s, err = s.Filter(guess, observed)
		if err != nil {
			history = append(history, Turn{
				Index: turn, Guess: guess, Pattern: observed,
				CandidatesLeft: 0, Duration: duration, BudgetExceeded: exceeded,
			})
			return Report{Outcome: Loss, History: history}, fmt.Errorf("orchestrator: turn %d: %w", turn, err)
		}

		history = append(history, Turn{
			Index: turn, Guess: guess, Pattern: observed,
			CandidatesLeft: s.Size(), Duration: duration, BudgetExceeded: exceeded,
		})
	}

	log.Info().Err(ErrTurnLimitReached).Int("turns", o.Config.MaxTurns).Msg("game ended without a win")
	return Report{Outcome: Loss, History: history}, nil
}
