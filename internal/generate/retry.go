package generate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/storygen-hq/storygen/internal/llm"
	"github.com/storygen-hq/storygen/internal/prompt"
)

const (
	maxRetries         = 3
	baseRetryDelay     = time.Second
	rateLimitBaseDelay = 60 * time.Second
	maxRetryDelay      = 60 * time.Second
)

// completeWithRetry calls the model with exponential backoff. Rate
// limits back off from a 60s base, transient failures from 1s. Client
// errors are never retried.
func (g *Generator) completeWithRetry(ctx context.Context, rendered *prompt.Rendered, p params) (*llm.Response, error) {
	req := &llm.Request{
		Model: p.model,
		Messages: []llm.Message{
			{Role: "system", Content: rendered.SystemPrompt},
			{Role: "user", Content: rendered.UserPrompt},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		TopP:        1.0,
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := g.client.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var base time.Duration
		switch {
		case errors.Is(err, llm.ErrRateLimited):
			base = rateLimitBaseDelay
		case errors.Is(err, llm.ErrTimeout), errors.Is(err, llm.ErrConnectionFailed), llm.ServerError(err):
			base = baseRetryDelay
		default:
			// Client errors and anything unrecognized fail fast.
			return nil, err
		}

		if attempt == maxRetries {
			break
		}

		delay := retryDelay(attempt, base)
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("completion failed, retrying")

		if err := g.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %w", llm.ErrRetriesExhausted, lastErr)
}

// retryDelay doubles the base per attempt, caps at maxRetryDelay, then
// applies 0-50% downward jitter.
func retryDelay(attempt int, base time.Duration) time.Duration {
	delay := base << attempt
	if delay > maxRetryDelay || delay <= 0 {
		delay = maxRetryDelay
	}
	return time.Duration(float64(delay) * (0.5 + rand.Float64()*0.5))
}
