package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for the failure modes the orchestrator distinguishes.
// The retry policy keys off these: rate limits back off on a 60s scale,
// timeouts/connection failures and server errors on a 1s scale, client
// errors are never retried.
var (
	ErrRateLimited      = errors.New("rate limited")
	ErrTimeout          = errors.New("request timed out")
	ErrConnectionFailed = errors.New("connection failed")
	ErrRetriesExhausted = errors.New("retries exhausted")
	ErrParsingFailed    = errors.New("no test cases survived parsing")
)

// APIError is a completion-API error carrying an HTTP-like status code,
// used to decide retry eligibility for 5xx vs 4xx.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion API returned status %d: %s", e.StatusCode, e.Body)
}

// ServerError reports whether err is a retryable 5xx API error.
func ServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// ClientError reports whether err is a non-retryable 4xx API error.
// Rate limiting (429) is classified as ErrRateLimited, never as a
// client error.
func ClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

// Classify maps a transport-level error onto the error taxonomy.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 429 {
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Body)
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
}
