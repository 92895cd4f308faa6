// Package oracle is the boundary to the external reasoning model used for CV
// extraction, match scoring and advisor chat.
package oracle

import "context"

// Task selects the agent that answers a request.
type Task string

const (
	TaskAnalyzeCV    Task = "analyze-cv"
	TaskScoreMatches Task = "score-matches"
	TaskChat         Task = "chat"
)

// Request is one prompt for one task. CallerID scopes the model session and
// may be empty for anonymous callers.
type Request struct {
	Task     Task
	CallerID string
	Message  string
}

// Oracle answers a prompt with the model's final text. Implementations
// report failures, timeouts included, as domain upstream errors.
type Oracle interface {
	Ask(ctx context.Context, req Request) (string, error)
}
