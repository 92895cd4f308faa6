// Package matching scores a profile against the opportunity catalog and
// returns the catalog ranked by match percentage.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/metrics"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle"
)

// Recorder durably stores match results for a known user.
type Recorder interface {
	UpsertUserMatch(ctx context.Context, userID int64, r domain.MatchResult) (domain.UserMatch, error)
}

// Engine delegates scoring to the oracle and merges the scores into the
// catalog.
type Engine struct {
	oracle   oracle.Oracle
	recorder Recorder
}

// NewEngine returns an Engine. recorder may be nil, in which case results are
// never recorded.
func NewEngine(o oracle.Oracle, recorder Recorder) *Engine {
	return &Engine{oracle: o, recorder: recorder}
}

// ComputeMatches returns one annotated opportunity per catalog entry, sorted
// by match percentage descending with ties kept in catalog order.
// Opportunities the oracle did not score get 0 and no reasons. An oracle
// failure fails the whole call and no partial result is returned.
func (e *Engine) ComputeMatches(ctx context.Context, profile *domain.Profile, catalog []domain.Opportunity) ([]domain.AnnotatedOpportunity, error) {
	return e.compute(ctx, "", profile, catalog)
}

// MatchForUser computes matches for an identified user and records every
// result. Recording is best effort: failures are logged and counted, and the
// computed results are returned regardless. Recording outlives cancellation
// of ctx, so a client that disconnects after scoring still gets its matches
// stored.
func (e *Engine) MatchForUser(ctx context.Context, userID int64, profile *domain.Profile, catalog []domain.Opportunity) ([]domain.AnnotatedOpportunity, error) {
	ranked, err := e.compute(ctx, strconv.FormatInt(userID, 10), profile, catalog)
	if err != nil {
		return nil, err
	}
	e.record(context.WithoutCancel(ctx), userID, ranked)
	return ranked, nil
}

func (e *Engine) compute(ctx context.Context, callerID string, profile *domain.Profile, catalog []domain.Opportunity) (ranked []domain.AnnotatedOpportunity, err error) {
	defer func() { metrics.ObserveMatchRequest(err) }()

	if profile == nil {
		return nil, domain.Validation("User profile is required")
	}
	if len(catalog) == 0 {
		return []domain.AnnotatedOpportunity{}, nil
	}

	prompt, err := BuildPrompt(normalizeProfile(*profile), catalog)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}
	raw, err := e.oracle.Ask(ctx, oracle.Request{
		Task:     oracle.TaskScoreMatches,
		CallerID: callerID,
		Message:  prompt,
	})
	if err != nil {
		return nil, err
	}
	results, err := oracle.DecodeMatches(raw)
	if err != nil {
		log.Printf("[matching] rejected oracle response: %v", err)
		return nil, err
	}
	return Merge(catalog, results), nil
}

func (e *Engine) record(ctx context.Context, userID int64, ranked []domain.AnnotatedOpportunity) {
	if e.recorder == nil {
		return
	}
	failed := 0
	for _, a := range ranked {
		if _, err := e.recorder.UpsertUserMatch(ctx, userID, a.Result()); err != nil {
			failed++
			log.Printf("[matching] failed to record match user=%d opportunity=%d: %v", userID, a.ID, err)
		}
	}
	metrics.AddMatchRecordFailures(failed)
	if failed > 0 {
		log.Printf("[matching] %d of %d match records failed for user %d", failed, len(ranked), userID)
	}
}

// Merge annotates every catalog entry with its result. Results for unknown
// opportunities are dropped; for repeated ids the first result wins.
func Merge(catalog []domain.Opportunity, results []domain.MatchResult) []domain.AnnotatedOpportunity {
	byID := make(map[int64]domain.MatchResult, len(results))
	for _, r := range results {
		if _, dup := byID[r.OpportunityID]; dup {
			log.Printf("[matching] ignoring repeated score for opportunity %d", r.OpportunityID)
			continue
		}
		byID[r.OpportunityID] = r
	}

	out := make([]domain.AnnotatedOpportunity, 0, len(catalog))
	known := make(map[int64]bool, len(catalog))
	for _, o := range catalog {
		known[o.ID] = true
		a := domain.AnnotatedOpportunity{
			Opportunity:  o.Clone(),
			MatchReasons: []string{},
		}
		if r, ok := byID[o.ID]; ok {
			a.MatchPercentage = r.MatchPercentage
			a.MatchReasons = append([]string{}, r.Reasons...)
		}
		out = append(out, a)
	}
	for id := range byID {
		if !known[id] {
			log.Printf("[matching] ignoring score for unknown opportunity %d", id)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out
}

// Unscored annotates the catalog with zero scores, in catalog order.
func Unscored(catalog []domain.Opportunity) []domain.AnnotatedOpportunity {
	return Merge(catalog, nil)
}

type promptOpportunity struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Requirements []string `json:"requirements"`
	Tags         []string `json:"tags"`
}

// BuildPrompt renders the scoring request for the oracle.
func BuildPrompt(p domain.Profile, catalog []domain.Opportunity) (string, error) {
	opps := make([]promptOpportunity, 0, len(catalog))
	for _, o := range catalog {
		opps = append(opps, promptOpportunity{
			ID:           o.ID,
			Title:        o.Title,
			Type:         o.Type,
			Requirements: nonNil(o.Requirements),
			Tags:         nonNil(o.Tags),
		})
	}
	oppsJSON, err := json.Marshal(opps)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"User Profile:\n- Skills: %s\n- Interests: %s\n- Goals: %s\n- Education: %s\n\nOpportunities: %s\n\n"+
			"Calculate match percentages (0-100) for each opportunity based on skills alignment, interests, and goals.\n"+
			"Return JSON with array of {opportunityId, matchPercentage, reasons} under \"matches\".",
		joinOrUnspecified(p.Skills),
		joinOrUnspecified(p.Interests),
		joinOrUnspecified(p.Goals),
		orUnspecified(p.Education),
		oppsJSON,
	), nil
}

func normalizeProfile(p domain.Profile) domain.Profile {
	p.Skills = nonNil(p.Skills)
	p.Interests = nonNil(p.Interests)
	p.Goals = nonNil(p.Goals)
	return p
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func joinOrUnspecified(v []string) string {
	if len(v) == 0 {
		return "Not specified"
	}
	return strings.Join(v, ", ")
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}
