package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/pattern"
	"github.com/wordlelab/entropysolver/internal/solver"
	"github.com/wordlelab/entropysolver/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	schema := `
	CREATE TABLE operators (
		id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL, created_at TEXT NOT NULL
	);
	CREATE TABLE runs (
		id TEXT PRIMARY KEY, mode TEXT NOT NULL, answer TEXT NOT NULL DEFAULT '',
		outcome TEXT NOT NULL, turn_count INTEGER NOT NULL,
		started_at TEXT NOT NULL, finished_at TEXT NOT NULL
	);
	CREATE TABLE turns (
		run_id TEXT NOT NULL, turn_index INTEGER NOT NULL, guess TEXT NOT NULL,
		pattern TEXT NOT NULL, candidates_left INTEGER NOT NULL, duration_ms INTEGER NOT NULL,
		PRIMARY KEY (run_id, turn_index)
	);`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func wordSet(t *testing.T, ss ...string) lexicon.Set {
	t.Helper()
	words := make([]pattern.Word, len(ss))
	for i, s := range ss {
		w, err := pattern.ParseWord(s)
		if err != nil {
			t.Fatalf("ParseWord(%q): %v", s, err)
		}
		words[i] = w
	}
	return lexicon.NewSet(words)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	allowed := wordSet(t, "CRANE", "CRATE", "CRAVE", "CRAZE", "GRADE", "SALET", "STARE", "ROUTE")
	answers := wordSet(t, "CRANE", "CRATE", "CRAVE", "CRAZE", "GRADE")
	cfg := solver.DefaultConfig()
	db := testDB(t)
	return New(allowed, answers, cfg, store.NewMemoryStore(), db)
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateSimulatedRunReturnsWin(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(createRunReq{Mode: "simulated", Answer: "CRANE"})
	req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got runDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Outcome != "WIN" {
		t.Errorf("Outcome = %q, want WIN", got.Outcome)
	}
	if len(got.Turns) == 0 {
		t.Error("expected non-empty Turns")
	}
}

func TestCreateRunRejectsAnswerOutsideSet(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(createRunReq{Mode: "simulated", Answer: "ZZZZZ"})
	req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetRunAfterCreate(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(createRunReq{Mode: "simulated", Answer: "CRATE"})
	req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	var created runDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	getReq := httptest.NewRequest(http.MethodGet, "/runs/"+created.ID, nil)
	getRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", getRec.Code, getRec.Body.String())
	}
}

func TestGetRunMissingReturns404(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/runs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestBenchmarkRequiresAuth(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/benchmark", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSignupLoginAndAuthenticatedBenchmark(t *testing.T) {
	srv := testServer(t)

	signupBody, _ := json.Marshal(signupReq{Username: "operator_one", Password: "correct-horse"})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(signupBody))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body = %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected an auth cookie to be set")
	}

	benchReq := httptest.NewRequest(http.MethodPost, "/benchmark", nil)
	for _, c := range cookies {
		benchReq.AddCookie(c)
	}
	benchRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(benchRec, benchReq)
	if benchRec.Code != http.StatusOK {
		t.Fatalf("benchmark status = %d, body = %s", benchRec.Code, benchRec.Body.String())
	}
	var summary benchmarkRes
	if err := json.Unmarshal(benchRec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Games != 5 {
		t.Errorf("Games = %d, want 5", summary.Games)
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(signupReq{Username: "dupeuser", Password: "correct-horse"})

	req1 := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	rec1 := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("first signup status = %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	rec2 := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusConflict {
		t.Errorf("second signup status = %d, want 409", rec2.Code)
	}
}
