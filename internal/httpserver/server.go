// Package httpserver exposes the solver over HTTP: start runs against
// either oracle, inspect run history, trigger full-Ω benchmarks, and
// manage operator accounts behind JWT authentication. Adapted from the
// original game server's router/middleware wiring, narrowed to an
// operator-facing API — there are no players, guests, or daily
// challenges here, only runs and the operators who trigger them.
package httpserver

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/solver"
	"github.com/wordlelab/entropysolver/internal/store"
)

// Server bundles the router, the immutable lexicon, solver defaults, the
// run store, and the operator database handle.
type Server struct {
	r       *chi.Mux
	allowed lexicon.Set
	answers lexicon.Set
	cfg     solver.Config
	store   store.Store
	db      *sql.DB
}

// New constructs a Server, installs middleware, and registers routes.
func New(allowed, answers lexicon.Set, cfg solver.Config, st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), allowed: allowed, answers: answers, cfg: cfg, store: st, db: db}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(60 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"entropysolver","endpoints":["/health","POST /runs","GET /runs","GET /runs/{id}","POST /benchmark","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/runs", s.handleCreateRun)
	s.r.Get("/runs", s.handleListRuns)
	s.r.Get("/runs/{id}", s.handleGetRun)

	s.r.With(s.requireAuth()).Post("/benchmark", s.handleBenchmark)

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
