package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wordlelab/entropysolver/internal/orchestrator"
)

// SQLStore is a SQLite-backed Store, adapted from the game server's
// db.go/daily store.go pair: parameterized upsert/query pattern against a
// runs/turns schema instead of daily_results.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an already-opened, already-migrated *sql.DB.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) SaveRun(ctx context.Context, run RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, answer, outcome, turn_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			outcome = excluded.outcome,
			turn_count = excluded.turn_count,
			finished_at = excluded.finished_at`,
		run.ID, string(run.Mode), run.Answer, string(run.Outcome), run.TurnCount,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store: save run %s: %w", run.ID, err)
	}
	return nil
}

func (s *SQLStore) AppendTurn(ctx context.Context, turn TurnRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (run_id, turn_index, guess, pattern, candidates_left, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, turn_index) DO UPDATE SET
			guess = excluded.guess,
			pattern = excluded.pattern,
			candidates_left = excluded.candidates_left,
			duration_ms = excluded.duration_ms`,
		turn.RunID, turn.TurnIndex, turn.Guess, turn.Pattern, turn.CandidatesLeft, turn.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("store: append turn for run %s: %w", turn.RunID, err)
	}
	return nil
}

func (s *SQLStore) GetRun(ctx context.Context, id string) (RunRecord, []TurnRecord, error) {
	var run RunRecord
	var mode, outcome, started, finished string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, mode, answer, outcome, turn_count, started_at, finished_at
		FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &mode, &run.Answer, &outcome, &run.TurnCount, &started, &finished)
	if err == sql.ErrNoRows {
		return RunRecord{}, nil, ErrRunNotFound
	}
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("store: get run %s: %w", id, err)
	}
	run.Mode = Mode(mode)
	run.Outcome = orchestrator.Outcome(outcome)
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)

	rows, err := s.db.QueryContext(ctx, `
		SELECT turn_index, guess, pattern, candidates_left, duration_ms
		FROM turns WHERE run_id = ? ORDER BY turn_index ASC`, id,
	)
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("store: get turns for run %s: %w", id, err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		var durationMs int64
		if err := rows.Scan(&t.TurnIndex, &t.Guess, &t.Pattern, &t.CandidatesLeft, &durationMs); err != nil {
			return RunRecord{}, nil, fmt.Errorf("store: scan turn for run %s: %w", id, err)
		}
		t.RunID = id
		t.Duration = time.Duration(durationMs) * time.Millisecond
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return RunRecord{}, nil, err
	}
	return run, turns, nil
}

func (s *SQLStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, answer, outcome, turn_count, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	out := make([]RunRecord, 0, limit)
	for rows.Next() {
		var run RunRecord
		var mode, outcome, started, finished string
		if err := rows.Scan(&run.ID, &mode, &run.Answer, &outcome, &run.TurnCount, &started, &finished); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		run.Mode = Mode(mode)
		run.Outcome = orchestrator.Outcome(outcome)
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, run)
	}
	return out, rows.Err()
}
