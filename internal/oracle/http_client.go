package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wordlelab/entropysolver/internal/pattern"
)

// HTTPClient is a network Adapter that POSTs a guess to a configured judge
// endpoint and parses a pattern back, retrying transport failures with
// capped exponential backoff before surfacing ErrOracleFailure.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
	BaseDelay  time.Duration
}

// NewHTTPClient returns an HTTPClient with sane defaults: a 10-second
// per-request timeout, 3 retries (4 attempts in all), and a 1-second base
// backoff delay that doubles each retry.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

type guessRequest struct {
	Guess string `json:"guess"`
}

type guessResponse struct {
	Pattern string `json:"pattern"`
	Error   string `json:"error,omitempty"`
}

// Submit posts {"guess": "..."} to BaseURL + "/guess" and parses the
// {"pattern": "..."} response. Transport errors and non-2xx responses are
// retried up to MaxRetries times with exponential backoff; persistent
// failure returns ErrOracleFailure.
func (c *HTTPClient) Submit(ctx context.Context, guess pattern.Word) (pattern.Pattern, error) {
	body, err := json.Marshal(guessRequest{Guess: guess.String()})
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("%w: encoding request: %v", ErrOracleFailure, err)
	}

	var lastErr error
	delay := c.BaseDelay
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn().Err(lastErr).Int("attempt", attempt).Str("guess", guess.String()).Msg("retrying oracle request")
			select {
			case <-ctx.Done():
				return pattern.Pattern{}, fmt.Errorf("%w: %v", ErrOracleFailure, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		p, err := c.doSubmit(ctx, body, guess)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}

	return pattern.Pattern{}, fmt.Errorf("%w: %v", ErrOracleFailure, lastErr)
}

func (c *HTTPClient) doSubmit(ctx context.Context, body []byte, guess pattern.Word) (pattern.Pattern, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/guess", bytes.NewReader(body))
	if err != nil {
		return pattern.Pattern{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return pattern.Pattern{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pattern.Pattern{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pattern.Pattern{}, fmt.Errorf("oracle returned HTTP %d for guess %s: %s", resp.StatusCode, guess, raw)
	}

	var out guessResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return pattern.Pattern{}, fmt.Errorf("decoding oracle response: %w", err)
	}
	if out.Error != "" {
		return pattern.Pattern{}, fmt.Errorf("oracle error: %s", out.Error)
	}

	p, err := pattern.ParsePattern(out.Pattern)
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("parsing oracle pattern %q: %w", out.Pattern, err)
	}
	return p, nil
}
