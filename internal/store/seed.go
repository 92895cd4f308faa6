package store

import (
	"context"
	"fmt"
	"log"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

// DemoOpportunities is the catalog every fresh store starts with.
func DemoOpportunities() []domain.Opportunity {
	return []domain.Opportunity{
		{
			Title:        "Software Engineering Internship",
			Organization: "Google",
			Type:         domain.TypeInternship,
			Location:     "Mountain View, CA",
			Duration:     "3 months",
			Salary:       "$8,000/month",
			Deadline:     "Deadline passed",
			Status:       domain.StatusDeadlinePassed,
			Description:  "Work on cutting-edge technology projects with experienced engineers. Contribute to products used by billions of users worldwide.",
			Requirements: []string{"JavaScript", "Python", "Computer Science"},
			Tags:         []string{"tech", "software", "internship"},
			URL:          "https://careers.google.com",
		},
		{
			Title:        "Remote Data Science Fellowship",
			Organization: "Microsoft",
			Type:         domain.TypeFellowship,
			Location:     "Remote",
			Duration:     "6 months",
			Salary:       "$6,000/month",
			Deadline:     "Deadline passed",
			Status:       domain.StatusDeadlinePassed,
			Description:  "Work on AI/ML projects with Microsoft Research team. Focus on responsible AI and social impact applications.",
			Requirements: []string{"Python", "Machine Learning", "Data Science"},
			Tags:         []string{"data-science", "ai", "remote"},
			URL:          "https://careers.microsoft.com",
			IsRemote:     true,
		},
		{
			Title:        "Erasmus+ Study Abroad Program",
			Organization: "European Union",
			Type:         domain.TypeStudyAbroad,
			Location:     "Various EU Countries",
			Duration:     "1-2 semesters",
			Deadline:     "Deadline passed",
			Status:       domain.StatusDeadlinePassed,
			Description:  "Study at top European universities while experiencing different cultures. Full academic credit transfer guaranteed.",
			Requirements: []string{"Academic Excellence", "Language Skills"},
			Tags:         []string{"europe", "study-abroad", "education"},
			URL:          "https://erasmus-plus.ec.europa.eu",
		},
		{
			Title:        "UN Sustainable Development Internship",
			Organization: "United Nations",
			Type:         domain.TypeInternship,
			Location:     "New York, NY",
			Duration:     "6 months",
			Deadline:     "Open",
			Status:       domain.StatusOpen,
			Description:  "Contribute to global sustainability initiatives. Work with international teams on climate change and development projects.",
			Requirements: []string{"International Relations", "Environmental Science"},
			Tags:         []string{"sustainability", "international", "policy"},
			URL:          "https://careers.un.org",
		},
		{
			Title:        "Fulbright Research Grant",
			Organization: "Fulbright Commission",
			Type:         domain.TypeGrant,
			Location:     "Global",
			Duration:     "9-12 months",
			Deadline:     "Open",
			Status:       domain.StatusOpen,
			Description:  "Conduct independent research abroad. Full funding for living expenses, travel, and research costs included.",
			Requirements: []string{"Research Experience", "Academic Excellence"},
			Tags:         []string{"research", "grant", "global"},
			URL:          "https://fulbrightscholars.org",
		},
		{
			Title:        "Singapore Exchange Program",
			Organization: "National University of Singapore",
			Type:         domain.TypeStudyAbroad,
			Location:     "Singapore",
			Duration:     "1 semester",
			Deadline:     "Open",
			Status:       domain.StatusOpen,
			Description:  "Experience Asian culture while studying at one of the world's top universities. Focus on technology and innovation.",
			Requirements: []string{"Academic Standing", "English Proficiency"},
			Tags:         []string{"singapore", "technology", "asia"},
			URL:          "https://nus.edu.sg",
		},
	}
}

// SeedIfEmpty loads the demo catalog when the store has no opportunities.
func SeedIfEmpty(ctx context.Context, s Store) error {
	existing, err := s.AllOpportunities(ctx)
	if err != nil {
		return fmt.Errorf("list opportunities: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, o := range DemoOpportunities() {
		if _, err := s.CreateOpportunity(ctx, o); err != nil {
			return fmt.Errorf("seed %q: %w", o.Title, err)
		}
	}
	log.Printf("[store] seeded %d demo opportunities", len(DemoOpportunities()))
	return nil
}
