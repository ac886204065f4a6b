// Package oracle implements the Oracle Adapter capability (A): a single
// submit(guess) -> Pattern operation the turn orchestrator treats as a
// synchronous, blocking call.
package oracle

import (
	"context"
	"errors"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

// ErrOracleFailure is returned when a network adapter cannot produce a
// pattern after exhausting its retry policy. The Simulator never returns it.
var ErrOracleFailure = errors.New("oracle: failed to obtain feedback for guess")

// Adapter is the minimal capability the orchestrator consumes: submit a
// guess, receive feedback. Implementations MUST be idempotent per game if
// the same guess is resubmitted (not exploited by the core; stated for
// testability).
type Adapter interface {
	Submit(ctx context.Context, guess pattern.Word) (pattern.Pattern, error)
}
