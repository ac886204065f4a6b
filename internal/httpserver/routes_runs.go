package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wordlelab/entropysolver/internal/oracle"
	"github.com/wordlelab/entropysolver/internal/orchestrator"
	"github.com/wordlelab/entropysolver/internal/pattern"
	"github.com/wordlelab/entropysolver/internal/store"
)

// createRunReq selects the oracle a run plays against. Mode "simulated"
// requires Answer to be a member of Ω; mode "live" requires OracleURL and
// drives a game against a real HTTP-speaking opponent.
type createRunReq struct {
	Mode      string `json:"mode"`
	Answer    string `json:"answer,omitempty"`
	OracleURL string `json:"oracleUrl,omitempty"`
}

type turnDTO struct {
	Index          int    `json:"index"`
	Guess          string `json:"guess"`
	Pattern        string `json:"pattern"`
	CandidatesLeft int    `json:"candidatesLeft"`
	DurationMs     int64  `json:"durationMs"`
	BudgetExceeded bool   `json:"budgetExceeded"`
}

type runDTO struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Answer     string    `json:"answer,omitempty"`
	Outcome    string    `json:"outcome"`
	TurnCount  int       `json:"turnCount"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Turns      []turnDTO `json:"turns,omitempty"`
}

// handleCreateRun starts and synchronously plays one game, persists it,
// and returns the full turn-by-turn report. Simulated runs finish in a
// handful of milliseconds; live runs run as long as the remote oracle
// takes to answer each guess, bounded by the request's Timeout middleware.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid_json"}`, http.StatusBadRequest)
		return
	}

	var (
		adapter oracle.Adapter
		mode    store.Mode
		answer  pattern.Word
		hasAns  bool
	)
	switch req.Mode {
	case "simulated":
		w2, err := pattern.ParseWord(req.Answer)
		if err != nil || !s.answers.Contains(w2) {
			http.Error(w, `{"error":"answer must be a five-letter member of the answer set"}`, http.StatusBadRequest)
			return
		}
		adapter = oracle.NewSimulator(w2)
		mode = store.ModeSimulated
		answer, hasAns = w2, true
	case "live":
		if req.OracleURL == "" {
			http.Error(w, `{"error":"oracleUrl is required for live runs"}`, http.StatusBadRequest)
			return
		}
		adapter = oracle.NewHTTPClient(req.OracleURL)
		mode = store.ModeLive
	default:
		http.Error(w, `{"error":"mode must be 'simulated' or 'live'"}`, http.StatusBadRequest)
		return
	}

	orch := orchestrator.New(s.allowed, s.answers, s.cfg, adapter)

	startedAt := time.Now()
	report, err := orch.Play(r.Context())
	finishedAt := time.Now()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		http.Error(w, `{"error":"run_failed","detail":"`+err.Error()+`"}`, http.StatusBadGateway)
		return
	}

	id := genID()
	answerStr := ""
	if hasAns {
		answerStr = answer.String()
	}
	run, turns := store.FromReport(id, mode, answerStr, report, startedAt, finishedAt)

	if s.store != nil {
		if err := s.store.SaveRun(r.Context(), run); err != nil {
			log.Warn().Err(err).Str("run", id).Msg("persist run")
		}
		for _, t := range turns {
			if err := s.store.AppendTurn(r.Context(), t); err != nil {
				log.Warn().Err(err).Str("run", id).Msg("persist turn")
			}
		}
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(runToDTO(run, turns))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"persistence disabled"}`, http.StatusServiceUnavailable)
		return
	}
	id := chi.URLParam(r, "id")
	run, turns, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(runToDTO(run, turns))
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		_ = json.NewEncoder(w).Encode([]runDTO{})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	out := make([]runDTO, len(runs))
	for i, run := range runs {
		out[i] = runToDTO(run, nil)
	}
	_ = json.NewEncoder(w).Encode(out)
}

func runToDTO(run store.RunRecord, turns []store.TurnRecord) runDTO {
	dto := runDTO{
		ID: run.ID, Mode: string(run.Mode), Answer: run.Answer, Outcome: string(run.Outcome),
		TurnCount: run.TurnCount, StartedAt: run.StartedAt, FinishedAt: run.FinishedAt,
	}
	if len(turns) > 0 {
		dto.Turns = make([]turnDTO, len(turns))
		for i, t := range turns {
			dto.Turns[i] = turnDTO{
				Index: t.TurnIndex, Guess: t.Guess, Pattern: t.Pattern,
				CandidatesLeft: t.CandidatesLeft, DurationMs: t.Duration.Milliseconds(),
			}
		}
	}
	return dto
}
