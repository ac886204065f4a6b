// Package solver implements the candidate-filtering state machine and the
// entropy-maximizing guess selector: the S, V and G components of the
// solver core.
package solver

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

// DefaultOpener is the precomputed first guess, chosen for maximum expected
// information gain against the standard answer set (≈5.89 bits).
const DefaultOpener = "SALET"

// Config controls the guess selector's shortcuts, pool policy, and
// parallelism.
type Config struct {
	MaxTurns      int           // maximum guesses before LOSS. Default 6.
	TimeBudget    time.Duration // wall-clock budget per call to Select. Default 5s.
	MaxWorkers    int           // parallel V goroutines. Default runtime.NumCPU().
	Opener        string        // initial word override; empty disables the shortcut.
	PoolThreshold int           // |S| <= threshold switches from Γ-pool to S-pool. Default 2.
}

// DefaultConfig returns the documented defaults for tuning the solver.
func DefaultConfig() Config {
	return Config{
		MaxTurns:      6,
		TimeBudget:    5 * time.Second,
		MaxWorkers:    runtime.NumCPU(),
		Opener:        DefaultOpener,
		PoolThreshold: 2,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// DefaultConfig's values for anything unset or unparseable. Recognized
// variables: SOLVER_MAX_TURNS, SOLVER_TIME_BUDGET_SECONDS,
// SOLVER_MAX_WORKERS, SOLVER_OPENER (set to "" to disable the shortcut via
// SOLVER_OPENER=none), SOLVER_POOL_THRESHOLD.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SOLVER_MAX_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxTurns = n
		}
	}
	if v := os.Getenv("SOLVER_TIME_BUDGET_SECONDS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.TimeBudget = time.Duration(f * float64(time.Second))
		}
	}
	if v := os.Getenv("SOLVER_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxWorkers = n
		}
	}
	if v := os.Getenv("SOLVER_OPENER"); v != "" {
		if v == "none" {
			cfg.Opener = ""
		} else {
			cfg.Opener = v
		}
	}
	if v := os.Getenv("SOLVER_POOL_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.PoolThreshold = n
		}
	}

	return cfg
}

// OpenerWord parses cfg.Opener into a Word. ok is false if the shortcut is
// disabled (empty Opener) or the configured opener fails to parse.
func (cfg Config) OpenerWord() (w pattern.Word, ok bool) {
	if cfg.Opener == "" {
		return pattern.Word{}, false
	}
	w, err := pattern.ParseWord(cfg.Opener)
	if err != nil {
		return pattern.Word{}, false
	}
	return w, true
}

func (cfg Config) workers() int {
	if cfg.MaxWorkers < 1 {
		return 1
	}
	return cfg.MaxWorkers
}
