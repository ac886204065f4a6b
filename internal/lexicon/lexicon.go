// Package lexicon loads and holds the two immutable word sets the solver
// operates over: the allowed-guess set (Γ) and the answer set (Ω).
//
// Loading prefers operator-supplied files (via config or environment
// variables), falling back to a small embedded default pair so the
// service and its tests run with zero external configuration.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/wordlelab/entropysolver/assets"
	"github.com/wordlelab/entropysolver/internal/pattern"
)

// ErrAnswersNotSubsetOfAllowed is returned when Ω is not a subset of Γ,
// violating the invariant the two word sets must hold.
var ErrAnswersNotSubsetOfAllowed = errors.New("lexicon: answers must be a subset of allowed guesses")

// ErrEmptyList is returned when a loaded word list has no valid entries.
var ErrEmptyList = errors.New("lexicon: word list is empty after validation")

var validWord = regexp.MustCompile(`^[A-Za-z]{5}$`)

// Set is an immutable collection of Words with O(1) membership testing.
type Set struct {
	words []pattern.Word
	index map[pattern.Word]struct{}
}

// NewSet builds a Set from a slice of words, deduplicating.
func NewSet(words []pattern.Word) Set {
	index := make(map[pattern.Word]struct{}, len(words))
	out := make([]pattern.Word, 0, len(words))
	for _, w := range words {
		if _, dup := index[w]; dup {
			continue
		}
		index[w] = struct{}{}
		out = append(out, w)
	}
	return Set{words: out, index: index}
}

// Contains reports whether w is a member of the set.
func (s Set) Contains(w pattern.Word) bool {
	_, ok := s.index[w]
	return ok
}

// Words returns the set's members. The returned slice must not be mutated.
func (s Set) Words() []pattern.Word { return s.words }

// Len reports the number of members.
func (s Set) Len() int { return len(s.words) }

// Config controls where Γ and Ω are loaded from.
type Config struct {
	AllowedPath string // path to allowed.txt; empty selects the embedded default (ConfigFromEnv fills it from WORDS_ALLOWED_FILE)
	AnswersPath string // path to answers.txt; empty selects the embedded default (ConfigFromEnv fills it from WORDS_ANSWERS_FILE)
}

// ConfigFromEnv builds a Config from WORDS_ALLOWED_FILE / WORDS_ANSWERS_FILE.
func ConfigFromEnv() Config {
	return Config{
		AllowedPath: os.Getenv("WORDS_ALLOWED_FILE"),
		AnswersPath: os.Getenv("WORDS_ANSWERS_FILE"),
	}
}

// Load reads Γ (allowed guesses) and Ω (answers) per cfg: one word per
// line, UTF-8, entries not matching /^[A-Za-z]{5}$/ (after trim) are
// rejected, survivors are uppercase-normalized.
//
// Resolution order per list:
//  1. cfg's explicit path, if set.
//  2. the embedded default pair, if the path is unset.
//
// Answers are validated to be a subset of allowed guesses.
func Load(cfg Config) (allowed, answers Set, err error) {
	allowedWords, err := loadList(cfg.AllowedPath, assets.AllowedList)
	if err != nil {
		return Set{}, Set{}, fmt.Errorf("lexicon: loading allowed list: %w", err)
	}
	answerWords, err := loadList(cfg.AnswersPath, assets.AnswersList)
	if err != nil {
		return Set{}, Set{}, fmt.Errorf("lexicon: loading answers list: %w", err)
	}

	allowed = NewSet(allowedWords)
	answers = NewSet(answerWords)

	if allowed.Len() == 0 || answers.Len() == 0 {
		return Set{}, Set{}, ErrEmptyList
	}

	for _, w := range answers.Words() {
		if !allowed.Contains(w) {
			return Set{}, Set{}, fmt.Errorf("%w: %s", ErrAnswersNotSubsetOfAllowed, w)
		}
	}

	return allowed, answers, nil
}

// loadList reads words from path if non-empty, otherwise falls back to the
// embedded default list (assets.AllowedList or assets.AnswersList).
func loadList(path string, fallback func() ([]string, error)) ([]pattern.Word, error) {
	var lines []string
	if path == "" {
		fb, err := fallback()
		if err != nil {
			return nil, err
		}
		lines = fb
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}
	return parseWords(lines), nil
}

// parseWords validates and normalizes raw lines into Words, silently
// dropping blanks, comments, and malformed entries.
func parseWords(lines []string) []pattern.Word {
	var out []pattern.Word
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !validWord.MatchString(line) {
			continue
		}
		w, err := pattern.ParseWord(line)
		if err != nil {
			continue
		}
		out = append(out, w)
	}
	return out
}
