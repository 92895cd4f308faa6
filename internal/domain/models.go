// Package domain holds the types shared by the matching pipeline, the stores
// and the HTTP layer.
package domain

import "time"

// Opportunity types. Profile goals are normalised onto this set.
const (
	TypeInternship  = "internship"
	TypeFellowship  = "fellowship"
	TypeStudyAbroad = "study-abroad"
	TypeGrant       = "grant"
)

// Opportunity statuses.
const (
	StatusOpen           = "open"
	StatusClosed         = "closed"
	StatusDeadlinePassed = "deadline-passed"
)

// HighMatchThreshold is the score from which a match counts as "high".
const HighMatchThreshold = 80

var opportunityTypes = []string{TypeInternship, TypeFellowship, TypeStudyAbroad, TypeGrant}

// OpportunityTypes returns the known opportunity types in display order.
func OpportunityTypes() []string {
	return append([]string(nil), opportunityTypes...)
}

func IsOpportunityType(s string) bool {
	for _, t := range opportunityTypes {
		if t == s {
			return true
		}
	}
	return false
}

func IsOpportunityStatus(s string) bool {
	switch s {
	case StatusOpen, StatusClosed, StatusDeadlinePassed:
		return true
	}
	return false
}

// Profile is the normalised input of the matching engine. Slices are never nil.
type Profile struct {
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Goals     []string `json:"goals"`
	Education string   `json:"education"`
}

// Opportunity is one catalog listing. ID is assigned by the store.
type Opportunity struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Duration     string   `json:"duration,omitempty"`
	Salary       string   `json:"salary,omitempty"`
	Deadline     string   `json:"deadline"`
	Status       string   `json:"status"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Tags         []string `json:"tags"`
	URL          string   `json:"url,omitempty"`
	IsRemote     bool     `json:"isRemote"`
}

// Normalize fills defaults so that list fields are never nil. A listing
// without a status is open.
func (o *Opportunity) Normalize() {
	if o.Requirements == nil {
		o.Requirements = []string{}
	}
	if o.Tags == nil {
		o.Tags = []string{}
	}
	if o.Status == "" {
		o.Status = StatusOpen
	}
}

// Clone returns a deep copy so callers cannot alias store-owned slices.
func (o Opportunity) Clone() Opportunity {
	o.Requirements = append([]string{}, o.Requirements...)
	o.Tags = append([]string{}, o.Tags...)
	return o
}

// MatchResult is the score of one opportunity for one profile.
type MatchResult struct {
	OpportunityID   int64    `json:"opportunityId"`
	MatchPercentage int      `json:"matchPercentage"`
	Reasons         []string `json:"reasons"`
}

// AnnotatedOpportunity is an opportunity merged with its match result.
type AnnotatedOpportunity struct {
	Opportunity
	MatchPercentage int      `json:"matchPercentage"`
	MatchReasons    []string `json:"matchReasons"`
}

// Result extracts the match result carried by the annotation.
func (a AnnotatedOpportunity) Result() MatchResult {
	return MatchResult{
		OpportunityID:   a.ID,
		MatchPercentage: a.MatchPercentage,
		Reasons:         a.MatchReasons,
	}
}

// User is an account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Country      string    `json:"country,omitempty"`
	Education    string    `json:"education,omitempty"`
	CVText       string    `json:"cvText,omitempty"`
	Skills       []string  `json:"skills"`
	Interests    []string  `json:"interests"`
	Goals        []string  `json:"goals"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile projects the career-relevant fields of the user.
func (u User) Profile() Profile {
	return Profile{
		Skills:    append([]string{}, u.Skills...),
		Interests: append([]string{}, u.Interests...),
		Goals:     append([]string{}, u.Goals...),
		Education: u.Education,
	}
}

// NewUser is the input of user creation.
type NewUser struct {
	Email        string
	Name         string
	Country      string
	PasswordHash string
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Name      *string   `json:"name"`
	Country   *string   `json:"country"`
	Education *string   `json:"education"`
	CVText    *string   `json:"cvText"`
	Skills    *[]string `json:"skills"`
	Interests *[]string `json:"interests"`
	Goals     *[]string `json:"goals"`
}

// Apply copies the set fields onto u.
func (up UserUpdate) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Country != nil {
		u.Country = *up.Country
	}
	if up.Education != nil {
		u.Education = *up.Education
	}
	if up.CVText != nil {
		u.CVText = *up.CVText
	}
	if up.Skills != nil {
		u.Skills = append([]string{}, (*up.Skills)...)
	}
	if up.Interests != nil {
		u.Interests = append([]string{}, (*up.Interests)...)
	}
	if up.Goals != nil {
		u.Goals = append([]string{}, (*up.Goals)...)
	}
}

// UserMatch is a recorded match, unique per (UserID, OpportunityID).
type UserMatch struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	OpportunityID   int64     `json:"opportunityId"`
	MatchPercentage int       `json:"matchPercentage"`
	Reasons         []string  `json:"reasons"`
	IsSaved         bool      `json:"isSaved"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CVAnalysis is the oracle's structured reading of a CV.
type CVAnalysis struct {
	Skills           []string `json:"skills"`
	ExperienceLevel  string   `json:"experienceLevel"`
	Interests        []string `json:"interests"`
	RecommendedTypes []string `json:"recommendedTypes"`
}
