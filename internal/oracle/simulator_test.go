package oracle

import (
	"context"
	"testing"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

func TestSimulatorSubmitMatchesFeedback(t *testing.T) {
	answer, err := pattern.ParseWord("CRANE")
	if err != nil {
		t.Fatal(err)
	}
	guess, err := pattern.ParseWord("SALET")
	if err != nil {
		t.Fatal(err)
	}

	sim := NewSimulator(answer)
	got, err := sim.Submit(context.Background(), guess)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := pattern.Feedback(guess, answer)
	if got != want {
		t.Errorf("Submit() = %s, want %s", got, want)
	}
}

func TestSimulatorSubmitIsIdempotent(t *testing.T) {
	answer, _ := pattern.ParseWord("CRANE")
	guess, _ := pattern.ParseWord("SALET")
	sim := NewSimulator(answer)

	first, err := sim.Submit(context.Background(), guess)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sim.Submit(context.Background(), guess)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Submit not idempotent: %s vs %s", first, second)
	}
}

func TestSimulatorWinningGuess(t *testing.T) {
	answer, _ := pattern.ParseWord("CRANE")
	sim := NewSimulator(answer)
	got, err := sim.Submit(context.Background(), answer)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsWin() {
		t.Errorf("Submit(answer) = %s, want all-exact", got)
	}
}
