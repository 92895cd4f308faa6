package profile

import "github.com/muhammadolammi/opportunitymatch/internal/domain"

// Question kinds, as rendered by the client.
const (
	KindSelect      = "select"
	KindMultiSelect = "multi-select"
	KindCardSelect  = "card-select"
)

type Option struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type Question struct {
	ID       int      `json:"id"`
	Field    string   `json:"field"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Kind     string   `json:"type"`
	Options  []Option `json:"options"`
}

var educationLevels = []string{
	"High School",
	"Bachelor's Degree",
	"Master's Degree",
	"PhD",
	"Professional Certification",
}

var interestAreas = []string{
	"Technology & Programming",
	"Data Science & AI",
	"Business & Management",
	"Research & Academia",
	"Arts & Design",
	"Healthcare & Medicine",
	"Environmental Science",
	"International Relations",
}

var goalCards = []Option{
	{ID: domain.TypeInternship, Title: "Tech Internships", Description: "Software, AI, Data Science"},
	{ID: domain.TypeStudyAbroad, Title: "Study Abroad", Description: "Exchange programs, degrees"},
	{ID: domain.TypeGrant, Title: "Research Grants", Description: "Funding for research projects"},
	{ID: domain.TypeFellowship, Title: "Fellowships", Description: "Professional development"},
}

func plainOptions(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{ID: v, Title: v})
	}
	return out
}

// Questions returns the fixed questionnaire. The result is freshly built on
// every call so callers may modify it.
func Questions() []Question {
	return []Question{
		{
			ID:       1,
			Field:    "education",
			Title:    "What's your educational background?",
			Subtitle: "Help us understand your academic foundation",
			Kind:     KindSelect,
			Options:  plainOptions(educationLevels),
		},
		{
			ID:       2,
			Field:    "interests",
			Title:    "What are your main areas of interest?",
			Subtitle: "Select all that apply",
			Kind:     KindMultiSelect,
			Options:  plainOptions(interestAreas),
		},
		{
			ID:       3,
			Field:    "goals",
			Title:    "What type of opportunities interest you most?",
			Subtitle: "Select your preferred opportunity types",
			Kind:     KindCardSelect,
			Options:  append([]Option(nil), goalCards...),
		},
	}
}
