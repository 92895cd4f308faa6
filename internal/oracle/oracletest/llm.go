package oracletest

import (
	"context"
	"errors"
	"iter"
	"sync"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// LLM is a model.LLM that answers every prompt with Reply. It lets tests run
// the real agent oracle without a network.
type LLM struct {
	Reply string
	// Block makes each call wait for its context to finish and fail with
	// the context's error.
	Block bool
	// FailFirst fails that many calls before answering.
	FailFirst int

	mu    sync.Mutex
	calls int
}

var _ model.LLM = (*LLM)(nil)

func (l *LLM) Name() string { return "fake-llm" }

func (l *LLM) GenerateContent(ctx context.Context, _ *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	l.mu.Lock()
	l.calls++
	n := l.calls
	l.mu.Unlock()

	return func(yield func(*model.LLMResponse, error) bool) {
		if l.Block {
			<-ctx.Done()
			yield(nil, ctx.Err())
			return
		}
		if n <= l.FailFirst {
			yield(nil, errors.New("model unavailable"))
			return
		}
		yield(&model.LLMResponse{
			Content:      genai.NewContentFromText(l.Reply, genai.RoleModel),
			TurnComplete: true,
		}, nil)
	}
}

// Calls reports how many times the model was invoked.
func (l *LLM) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
