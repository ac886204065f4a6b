// Package benchmark drives one simulated game per word in Ω and
// aggregates win rate and turn-count statistics across the full
// answer set.
package benchmark

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/oracle"
	"github.com/wordlelab/entropysolver/internal/orchestrator"
	"github.com/wordlelab/entropysolver/internal/pattern"
	"github.com/wordlelab/entropysolver/internal/solver"
	"github.com/wordlelab/entropysolver/internal/store"
)

// GameResult is one benchmark game's outcome, labeled by its answer.
type GameResult struct {
	Answer  pattern.Word
	Outcome orchestrator.Outcome
	Turns   int
}

// Summary aggregates GameResults the way benjaminjkraft's playAll/metrics
// reduces its per-target trial counts: win rate, mean turns, and the
// tail (worst-case) games.
type Summary struct {
	Games     int
	Wins      int
	WinRate   float64
	MeanTurns float64
	Best      GameResult
	Worst     GameResult
	TailGames []GameResult // the 5 highest-turn-count games, worst first
}

// Run plays one simulated game per word in answers, fanned out across a
// bounded worker pool, and persists one RunRecord per game via st (nil
// disables persistence). cfg.MaxWorkers governs the *outer* fan-out; each
// game's inner guess-selector gets a reduced worker count so total
// goroutines stay bounded.
func Run(ctx context.Context, allowed, answers lexicon.Set, cfg solver.Config, st store.Store, progress bool) (Summary, error) {
	words := answers.Words()
	if len(words) == 0 {
		return Summary{}, fmt.Errorf("benchmark: answer set is empty")
	}

	outerWorkers := cfg.MaxWorkers
	if outerWorkers < 1 {
		outerWorkers = 1
	}
	innerCfg := cfg
	innerCfg.MaxWorkers = maxInt(1, cfg.MaxWorkers/outerWorkers)

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(len(words)))
	}

	results := make([]GameResult, len(words))
	sem := make(chan struct{}, outerWorkers)
	g, gctx := errgroup.WithContext(ctx)

	for i, answer := range words {
		i, answer := i, answer
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			startedAt := time.Now()
			sim := oracle.NewSimulator(answer)
			orch := orchestrator.New(allowed, answers, innerCfg, sim)
			report, err := orch.Play(gctx)
			if err != nil {
				return fmt.Errorf("benchmark: game for answer %s: %w", answer, err)
			}
			finishedAt := time.Now()

			results[i] = GameResult{Answer: answer, Outcome: report.Outcome, Turns: len(report.History)}

			if st != nil {
				runID := fmt.Sprintf("bench-%s", answer)
				run, turns := store.FromReport(runID, store.ModeSimulated, answer.String(), report, startedAt, finishedAt)
				if err := st.SaveRun(gctx, run); err != nil {
					return fmt.Errorf("benchmark: persisting run %s: %w", runID, err)
				}
				for _, t := range turns {
					if err := st.AppendTurn(gctx, t); err != nil {
						return fmt.Errorf("benchmark: persisting turn for run %s: %w", runID, err)
					}
				}
			}

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return summarize(results), nil
}

func summarize(results []GameResult) Summary {
	s := Summary{Games: len(results)}
	var turnSum int
	for i, r := range results {
		if r.Outcome == orchestrator.Win {
			s.Wins++
		}
		turnSum += r.Turns
		if i == 0 || r.Turns < s.Best.Turns {
			s.Best = r
		}
		if i == 0 || r.Turns > s.Worst.Turns {
			s.Worst = r
		}
	}
	s.WinRate = float64(s.Wins) / float64(s.Games)
	s.MeanTurns = float64(turnSum) / float64(s.Games)
	s.TailGames = worstGames(results, 5)
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// worstGames returns the n games with the highest turn counts, most
// expensive first.
func worstGames(results []GameResult, n int) []GameResult {
	cp := make([]GameResult, len(results))
	copy(cp, results)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Turns > cp[j].Turns })
	if n > len(cp) {
		n = len(cp)
	}
	return cp[:n]
}
