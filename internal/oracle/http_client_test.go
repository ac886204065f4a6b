package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

func TestHTTPClientSubmitSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req guessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Guess != "CRANE" {
			t.Errorf("request guess = %q, want CRANE", req.Guess)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(guessResponse{Pattern: "EEEEE"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	guess, _ := pattern.ParseWord("CRANE")
	got, err := c.Submit(context.Background(), guess)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !got.IsWin() {
		t.Errorf("Submit() = %s, want all-exact", got)
	}
}

func TestHTTPClientRetriesTransientFailure(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(guessResponse{Pattern: "APAEA"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.BaseDelay = time.Millisecond
	guess, _ := pattern.ParseWord("SALET")
	got, err := c.Submit(context.Background(), guess)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if attempts < 2 {
		t.Errorf("attempts = %d, want at least 2", attempts)
	}
	want, _ := pattern.ParsePattern("APAEA")
	if got != want {
		t.Errorf("Submit() = %s, want %s", got, want)
	}
}

func TestHTTPClientPersistentFailureReturnsErrOracleFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.BaseDelay = time.Millisecond
	c.MaxRetries = 2
	guess, _ := pattern.ParseWord("SALET")

	_, err := c.Submit(context.Background(), guess)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestHTTPClientRejectsMalformedPattern(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(guessResponse{Pattern: "ZZZZZ"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.BaseDelay = time.Millisecond
	c.MaxRetries = 1
	guess, _ := pattern.ParseWord("SALET")

	_, err := c.Submit(context.Background(), guess)
	if err == nil {
		t.Fatal("expected error for malformed pattern, got nil")
	}
}
