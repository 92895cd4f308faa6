package oracle

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

type agentSpec struct {
	task        Task
	name        string
	description string
	instruction string
}

var agentSpecs = []agentSpec{
	{TaskAnalyzeCV, "cv analyzer", "Analyze CV", cvAnalysisPrompt()},
	{TaskScoreMatches, "opportunity matcher", "Score opportunities for a profile", matchScoringPrompt()},
	{TaskChat, "career advisor", "Answer career questions", chatPrompt()},
}

// NewModel creates the Gemini model shared by all agents.
func NewModel(ctx context.Context, apiKey, modelName string) (model.LLM, error) {
	m, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return m, nil
}

// GetAgent builds one llm agent with the given instruction.
func GetAgent(m model.LLM, name, description, instruction string) (agent.Agent, error) {
	customAgent, err := llmagent.New(llmagent.Config{
		Name:        name,
		Model:       m,
		Description: description,
		Instruction: instruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent %q: %w", name, err)
	}
	return customAgent, nil
}
