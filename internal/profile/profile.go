// Package profile builds the normalised Profile handed to the matching
// engine, either from an oracle CV analysis or from questionnaire answers.
package profile

import (
	"strings"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

// Answers are the questionnaire selections.
type Answers struct {
	Education string   `json:"education"`
	Interests []string `json:"interests"`
	Goals     []string `json:"goals"`
	Skills    []string `json:"skills"`
}

var goalAliases = map[string]string{
	"internship":       domain.TypeInternship,
	"internships":      domain.TypeInternship,
	"tech internships": domain.TypeInternship,
	"fellowship":       domain.TypeFellowship,
	"fellowships":      domain.TypeFellowship,
	"study-abroad":     domain.TypeStudyAbroad,
	"study abroad":     domain.TypeStudyAbroad,
	"study_abroad":     domain.TypeStudyAbroad,
	"studyabroad":      domain.TypeStudyAbroad,
	"exchange":         domain.TypeStudyAbroad,
	"grant":            domain.TypeGrant,
	"grants":           domain.TypeGrant,
	"research grant":   domain.TypeGrant,
	"research grants":  domain.TypeGrant,
}

// NormalizeGoal maps spellings of an opportunity type onto the canonical
// type. Anything else is returned trimmed and unchanged.
func NormalizeGoal(g string) string {
	g = strings.TrimSpace(g)
	if t, ok := goalAliases[strings.ToLower(g)]; ok {
		return t
	}
	return g
}

// Normalize trims every field, drops empty entries and case-insensitive
// duplicates (first spelling wins) and guarantees non-nil slices.
func Normalize(p domain.Profile) domain.Profile {
	goals := make([]string, 0, len(p.Goals))
	for _, g := range p.Goals {
		goals = append(goals, NormalizeGoal(g))
	}
	return domain.Profile{
		Skills:    cleanList(p.Skills),
		Interests: cleanList(p.Interests),
		Goals:     cleanList(goals),
		Education: strings.TrimSpace(p.Education),
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// FromAnalysis builds a profile from the oracle's reading of a CV. The
// experience level stands in for education and the recommended types become
// the goals.
func FromAnalysis(a domain.CVAnalysis) domain.Profile {
	return Normalize(domain.Profile{
		Skills:    a.Skills,
		Interests: a.Interests,
		Goals:     a.RecommendedTypes,
		Education: a.ExperienceLevel,
	})
}

// FromAnswers validates questionnaire answers against the fixed options.
func FromAnswers(a Answers) (domain.Profile, error) {
	p := Normalize(domain.Profile{
		Skills:    a.Skills,
		Interests: a.Interests,
		Goals:     a.Goals,
		Education: a.Education,
	})
	if p.Education == "" {
		return domain.Profile{}, domain.Validation("Education is required")
	}
	if !contains(educationLevels, p.Education) {
		return domain.Profile{}, domain.Validation("Unknown education level: " + p.Education)
	}
	if len(p.Interests) == 0 {
		return domain.Profile{}, domain.Validation("Select at least one interest")
	}
	for _, in := range p.Interests {
		if !contains(interestAreas, in) {
			return domain.Profile{}, domain.Validation("Unknown interest: " + in)
		}
	}
	if len(p.Goals) == 0 {
		return domain.Profile{}, domain.Validation("Select at least one opportunity type")
	}
	for _, g := range p.Goals {
		if !domain.IsOpportunityType(g) {
			return domain.Profile{}, domain.Validation("Unknown opportunity type: " + g)
		}
	}
	return p, nil
}

// FromUser builds a profile from the stored user record.
func FromUser(u domain.User) domain.Profile {
	return Normalize(u.Profile())
}

// Update returns the user update that stores p on the user record.
func Update(p domain.Profile) domain.UserUpdate {
	skills, interests, goals := p.Skills, p.Interests, p.Goals
	education := p.Education
	return domain.UserUpdate{
		Education: &education,
		Skills:    &skills,
		Interests: &interests,
		Goals:     &goals,
	}
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
