package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordlelab/entropysolver/internal/httpserver"
	"github.com/wordlelab/entropysolver/internal/lexicon"
	"github.com/wordlelab/entropysolver/internal/oracle"
	"github.com/wordlelab/entropysolver/internal/orchestrator"
	"github.com/wordlelab/entropysolver/internal/pattern"
	"github.com/wordlelab/entropysolver/internal/solver"
	"github.com/wordlelab/entropysolver/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	mode := flag.String("mode", "server", "run mode: server or cli")
	answerFlag := flag.String("answer", "", "answer for -mode=cli (must be a member of the answer set)")
	flag.Parse()

	allowed, answers, err := lexicon.Load(lexicon.ConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	cfg := solver.ConfigFromEnv()

	if *mode == "cli" {
		runCLI(allowed, answers, cfg, *answerFlag)
		return
	}

	db, err := openDB(getEnv("DB_PATH", "./data/entropysolver.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	st := store.NewSQLStore(db)
	srv := httpserver.New(allowed, answers, cfg, st, db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting entropysolver")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// runCLI plays one simulated game against answer and prints the
// turn-by-turn transcript to stdout, without starting the HTTP server.
func runCLI(allowed, answers lexicon.Set, cfg solver.Config, answerFlag string) {
	answer, err := pattern.ParseWord(answerFlag)
	if err != nil || !answers.Contains(answer) {
		fmt.Fprintf(os.Stderr, "error: -answer must be a five-letter member of the answer set (got %q)\n", answerFlag)
		os.Exit(1)
	}

	sim := oracle.NewSimulator(answer)
	orch := orchestrator.New(allowed, answers, cfg, sim)

	report, err := orch.Play(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	for _, t := range report.History {
		fmt.Printf("turn %d: %s -> %s (%d candidates remain)\n",
			t.Index+1, t.Guess, t.Pattern, t.CandidatesLeft)
	}
	fmt.Printf("result: %s in %d turns\n", report.Outcome, len(report.History))
	if report.Outcome != orchestrator.Win {
		os.Exit(1)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
