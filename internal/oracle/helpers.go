package oracle

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CleanJson strips a surrounding markdown code fence from model output.
func CleanJson(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// retry calls fn up to attempts times with linear backoff, giving up early
// once ctx is done.
func retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	if attempts < 1 {
		attempts = 1
	}
	tried := 0
	for i := 0; i < attempts; i++ {
		tried++
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if ctx.Err() != nil || i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(backoff * time.Duration(i+1)):
		}
		if ctx.Err() != nil {
			break
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", tried, lastErr)
}
