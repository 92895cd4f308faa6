package oracle_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle/oracletest"
)

const fencedMatches = "```json\n{\"matches\":[{\"opportunityId\":1,\"matchPercentage\":92,\"reasons\":[\"Python match\"]}]}\n```"

func newAgentOracle(t *testing.T, llm *oracletest.LLM, cfg oracle.Config) *oracle.AgentOracle {
	t.Helper()
	o, err := oracle.NewAgentOracle(llm, cfg)
	if err != nil {
		t.Fatalf("NewAgentOracle: %v", err)
	}
	return o
}

func TestAgentOracle_TimeoutIsUpstream(t *testing.T) {
	llm := &oracletest.LLM{Block: true}
	o := newAgentOracle(t, llm, oracle.Config{Timeout: 200 * time.Millisecond, Attempts: 3})

	start := time.Now()
	out, err := o.Ask(context.Background(), oracle.Request{Task: oracle.TaskScoreMatches, CallerID: "7", Message: "score"})
	elapsed := time.Since(start)

	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if got := domain.MessageOf(err, ""); got != "oracle timed out" {
		t.Errorf("message = %q, want oracle timed out", got)
	}
	if out != "" {
		t.Errorf("output = %q, want empty", out)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Ask took %v, want about the 200ms timeout", elapsed)
	}
	// The deadline is shared by all attempts, so no retry follows it.
	if n := llm.Calls(); n != 1 {
		t.Errorf("model calls = %d, want 1", n)
	}
}

func TestAgentOracle_CallerCancelIsNotTimeout(t *testing.T) {
	llm := &oracletest.LLM{Block: true}
	o := newAgentOracle(t, llm, oracle.Config{Timeout: 5 * time.Second, Attempts: 2})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	_, err := o.Ask(ctx, oracle.Request{Task: oracle.TaskChat, Message: "hi"})
	if domain.KindOf(err) != domain.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if got := domain.MessageOf(err, ""); got != "oracle call failed" {
		t.Errorf("message = %q, want oracle call failed", got)
	}
}

func TestAgentOracle_ReturnsFinalText(t *testing.T) {
	llm := &oracletest.LLM{Reply: fencedMatches}
	o := newAgentOracle(t, llm, oracle.Config{Timeout: 5 * time.Second, Attempts: 1})

	out, err := o.Ask(context.Background(), oracle.Request{Task: oracle.TaskScoreMatches, Message: "score"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out != fencedMatches {
		t.Errorf("output = %q, want the model's text", out)
	}
	results, err := oracle.DecodeMatches(out)
	if err != nil {
		t.Fatalf("DecodeMatches: %v", err)
	}
	if len(results) != 1 || results[0].OpportunityID != 1 || results[0].MatchPercentage != 92 {
		t.Errorf("decoded %+v", results)
	}
}

func TestAgentOracle_RetriesTransientFailure(t *testing.T) {
	llm := &oracletest.LLM{Reply: "Focus on Python.", FailFirst: 1}
	o := newAgentOracle(t, llm, oracle.Config{Timeout: 5 * time.Second, Attempts: 2})

	out, err := o.Ask(context.Background(), oracle.Request{Task: oracle.TaskChat, CallerID: "3", Message: "advice?"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(out, "Python") {
		t.Errorf("output = %q", out)
	}
	if n := llm.Calls(); n != 2 {
		t.Errorf("model calls = %d, want 2", n)
	}
}

func TestAgentOracle_EmptyReplyFails(t *testing.T) {
	llm := &oracletest.LLM{Reply: "   "}
	o := newAgentOracle(t, llm, oracle.Config{Timeout: 5 * time.Second, Attempts: 1})

	_, err := o.Ask(context.Background(), oracle.Request{Task: oracle.TaskAnalyzeCV, Message: "cv"})
	if domain.KindOf(err) != domain.KindUpstream {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestAgentOracle_UnknownTask(t *testing.T) {
	llm := &oracletest.LLM{Reply: "{}"}
	o := newAgentOracle(t, llm, oracle.Config{})

	_, err := o.Ask(context.Background(), oracle.Request{Task: "translate", Message: "x"})
	if domain.KindOf(err) != domain.KindUpstream {
		t.Errorf("expected upstream error, got %v", err)
	}
	if n := llm.Calls(); n != 0 {
		t.Errorf("model called %d times for an unknown task", n)
	}
}
