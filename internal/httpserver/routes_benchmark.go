package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/wordlelab/entropysolver/internal/benchmark"
)

type benchmarkRes struct {
	Games     int      `json:"games"`
	Wins      int      `json:"wins"`
	WinRate   float64  `json:"winRate"`
	MeanTurns float64  `json:"meanTurns"`
	Best      gameDTO  `json:"best"`
	Worst     gameDTO  `json:"worst"`
	TailGames []gameDTO `json:"tailGames"`
}

type gameDTO struct {
	Answer  string `json:"answer"`
	Outcome string `json:"outcome"`
	Turns   int    `json:"turns"`
}

// handleBenchmark runs one simulated game per word in Ω and returns the
// aggregate report. Gated behind requireAuth: a full-Ω sweep is expensive
// enough that anonymous callers shouldn't be able to trigger it freely.
func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	summary, err := benchmark.Run(r.Context(), s.allowed, s.answers, s.cfg, s.store, false)
	if err != nil {
		log.Error().Err(err).Msg("benchmark run failed")
		http.Error(w, `{"error":"benchmark_failed"}`, http.StatusInternalServerError)
		return
	}
	res := benchmarkRes{
		Games: summary.Games, Wins: summary.Wins, WinRate: summary.WinRate, MeanTurns: summary.MeanTurns,
		Best:  gameDTO{Answer: summary.Best.Answer.String(), Outcome: string(summary.Best.Outcome), Turns: summary.Best.Turns},
		Worst: gameDTO{Answer: summary.Worst.Answer.String(), Outcome: string(summary.Worst.Outcome), Turns: summary.Worst.Turns},
	}
	res.TailGames = make([]gameDTO, len(summary.TailGames))
	for i, g := range summary.TailGames {
		res.TailGames[i] = gameDTO{Answer: g.Answer.String(), Outcome: string(g.Outcome), Turns: g.Turns}
	}
	_ = json.NewEncoder(w).Encode(res)
}
