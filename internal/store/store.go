// Package store persists solver run history: one record per finished
// game plus its per-turn trace. It is an optional capability the
// orchestrator's callers may attach — the core solver never depends on it.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/wordlelab/entropysolver/internal/orchestrator"
)

// ErrRunNotFound is returned by GetRun when no run with the given id exists.
var ErrRunNotFound = errors.New("store: run not found")

// Mode distinguishes a simulated (known-answer) run from a live run
// against a network oracle.
type Mode string

const (
	ModeSimulated Mode = "simulated"
	ModeLive      Mode = "live"
)

// RunRecord is one row per finished game.
type RunRecord struct {
	ID         string
	Mode       Mode
	Answer     string // set only for ModeSimulated
	Outcome    orchestrator.Outcome
	TurnCount  int
	StartedAt  time.Time
	FinishedAt time.Time
}

// TurnRecord is one row per turn within a run.
type TurnRecord struct {
	RunID          string
	TurnIndex      int
	Guess          string
	Pattern        string
	CandidatesLeft int
	Duration       time.Duration
}

// Store is the persistence capability the HTTP API and benchmark runner
// consume. Implementations: MemoryStore (ephemeral) and SQLStore
// (SQLite-backed).
type Store interface {
	SaveRun(ctx context.Context, run RunRecord) error
	AppendTurn(ctx context.Context, turn TurnRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, []TurnRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
}

// FromReport builds a RunRecord and its TurnRecords from an orchestrator
// Report, filling in id/mode/answer/timestamps the report itself doesn't
// carry.
func FromReport(id string, mode Mode, answer string, report orchestrator.Report, startedAt, finishedAt time.Time) (RunRecord, []TurnRecord) {
	run := RunRecord{
		ID:         id,
		Mode:       mode,
		Answer:     answer,
		Outcome:    report.Outcome,
		TurnCount:  len(report.History),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	turns := make([]TurnRecord, len(report.History))
	for i, t := range report.History {
		turns[i] = TurnRecord{
			RunID:          id,
			TurnIndex:      t.Index,
			Guess:          t.Guess.String(),
			Pattern:        t.Pattern.String(),
			CandidatesLeft: t.CandidatesLeft,
			Duration:       t.Duration,
		}
	}
	return run, turns
}
