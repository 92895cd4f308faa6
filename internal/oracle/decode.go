package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

type matchesPayload struct {
	Matches *[]matchEntry `json:"matches"`
}

type matchEntry struct {
	OpportunityID   *int64   `json:"opportunityId"`
	MatchPercentage *int     `json:"matchPercentage"`
	Reasons         []string `json:"reasons"`
}

type analysisPayload struct {
	Skills           []string `json:"skills"`
	ExperienceLevel  string   `json:"experienceLevel"`
	Interests        []string `json:"interests"`
	RecommendedTypes []string `json:"recommendedTypes"`
}

func malformed(err error) error {
	return domain.Upstream("malformed oracle response", err)
}

// decodeObject unmarshals a single JSON object, rejecting arrays, scalars and
// trailing data.
func decodeObject(raw string, v any) error {
	clean := CleanJson(raw)
	if !bytes.HasPrefix([]byte(clean), []byte("{")) {
		return fmt.Errorf("expected a JSON object")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}

// DecodeMatches validates a scoring response. Any shape mismatch rejects the
// whole response: a missing "matches" list, an entry without id or score, a
// non-integer score, or a score outside 0..100.
func DecodeMatches(raw string) ([]domain.MatchResult, error) {
	var p matchesPayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, malformed(err)
	}
	if p.Matches == nil {
		return nil, malformed(fmt.Errorf(`missing "matches"`))
	}
	out := make([]domain.MatchResult, 0, len(*p.Matches))
	for i, m := range *p.Matches {
		if m.OpportunityID == nil {
			return nil, malformed(fmt.Errorf("matches[%d]: missing opportunityId", i))
		}
		if m.MatchPercentage == nil {
			return nil, malformed(fmt.Errorf("matches[%d]: missing matchPercentage", i))
		}
		if *m.MatchPercentage < 0 || *m.MatchPercentage > 100 {
			return nil, malformed(fmt.Errorf("matches[%d]: matchPercentage %d out of range", i, *m.MatchPercentage))
		}
		reasons := m.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		out = append(out, domain.MatchResult{
			OpportunityID:   *m.OpportunityID,
			MatchPercentage: *m.MatchPercentage,
			Reasons:         reasons,
		})
	}
	return out, nil
}

// DecodeAnalysis validates a CV extraction response. Absent lists become
// empty lists.
func DecodeAnalysis(raw string) (domain.CVAnalysis, error) {
	var p analysisPayload
	if err := decodeObject(raw, &p); err != nil {
		return domain.CVAnalysis{}, malformed(err)
	}
	a := domain.CVAnalysis{
		Skills:           p.Skills,
		ExperienceLevel:  p.ExperienceLevel,
		Interests:        p.Interests,
		RecommendedTypes: p.RecommendedTypes,
	}
	if a.Skills == nil {
		a.Skills = []string{}
	}
	if a.Interests == nil {
		a.Interests = []string{}
	}
	if a.RecommendedTypes == nil {
		a.RecommendedTypes = []string{}
	}
	return a, nil
}
