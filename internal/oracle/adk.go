package oracle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/metrics"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	anonymousCaller = "anonymous"
	retryBackoff    = 500 * time.Millisecond
)

// Config tunes AgentOracle.
type Config struct {
	Timeout  time.Duration
	Attempts int
}

type taskRunner struct {
	appName string
	runner  *runner.Runner
}

// AgentOracle answers requests with one ADK agent per task. Each call runs in
// its own short-lived agent session, so no conversation state leaks between
// requests.
type AgentOracle struct {
	sessions session.Service
	runners  map[Task]taskRunner
	cfg      Config
}

// NewAgentOracle builds the agents and runners for every task on top of m.
func NewAgentOracle(m model.LLM, cfg Config) (*AgentOracle, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	inMemoryService := session.InMemoryService()
	o := &AgentOracle{
		sessions: inMemoryService,
		runners:  make(map[Task]taskRunner, len(agentSpecs)),
		cfg:      cfg,
	}
	for _, spec := range agentSpecs {
		a, err := GetAgent(m, spec.name, spec.description, spec.instruction)
		if err != nil {
			return nil, err
		}
		r, err := runner.New(runner.Config{
			AppName:        a.Name(),
			Agent:          a,
			SessionService: inMemoryService,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create runner for %q: %w", spec.name, err)
		}
		o.runners[spec.task] = taskRunner{appName: a.Name(), runner: r}
	}
	return o, nil
}

// Ask runs req against the task's agent, bounded by the configured timeout
// and retried on transient failures.
func (o *AgentOracle) Ask(ctx context.Context, req Request) (string, error) {
	tr, ok := o.runners[req.Task]
	if !ok {
		return "", domain.Upstream("oracle unavailable", fmt.Errorf("no agent for task %q", req.Task))
	}
	callerID := req.CallerID
	if callerID == "" {
		callerID = anonymousCaller
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, err := retry(ctx, o.cfg.Attempts, retryBackoff, func() (string, error) {
		return o.run(ctx, tr, callerID, req.Message)
	})
	metrics.ObserveOracleCall(string(req.Task), err, time.Since(start))
	if err != nil {
		log.Printf("[oracle] %s failed for caller %s: %v", req.Task, callerID, err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.Upstream("oracle timed out", err)
		}
		return "", domain.Upstream("oracle call failed", err)
	}
	return out, nil
}

func (o *AgentOracle) run(ctx context.Context, tr taskRunner, callerID, message string) (string, error) {
	created, err := o.sessions.Create(ctx, &session.CreateRequest{
		AppName:   tr.appName,
		UserID:    callerID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	sess := created.Session
	defer func() {
		err := o.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if err != nil {
			log.Printf("[oracle] failed to delete agent session %s: %v", sess.ID(), err)
		}
	}()

	stream := tr.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: message},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event == nil || !event.IsFinalResponse() || event.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range event.Content.Parts {
			if p != nil {
				sb.WriteString(p.Text)
			}
		}
		output = sb.String()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(output) == "" {
		return "", fmt.Errorf("empty agent response")
	}
	return output, nil
}
