package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/matching"
	"github.com/muhammadolammi/opportunitymatch/internal/present"
)

func (s *Server) listOpportunities(c *gin.Context) {
	opts, err := present.ParseOptions(c.Query("query"), c.Query("type"), c.Query("sort"))
	if err != nil {
		respondError(c, err, "")
		return
	}
	catalog, err := s.store.AllOpportunities(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load opportunities")
		return
	}
	view := present.Apply(matching.Unscored(catalog), opts)
	out := make([]domain.Opportunity, 0, len(view))
	for _, a := range view {
		out = append(out, a.Opportunity)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getOpportunity(c *gin.Context) {
	id, err := pathID(c, "opportunity")
	if err != nil {
		respondError(c, err, "")
		return
	}
	opp, err := s.store.OpportunityByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load opportunity")
		return
	}
	c.JSON(http.StatusOK, opp)
}

// opportunityRequest is the admin payload for a new listing. Status is
// optional and defaults to open; the created listing is returned with the
// default applied, exactly as later reads will show it.
type opportunityRequest struct {
	Title        string   `json:"title" binding:"required"`
	Organization string   `json:"organization" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Duration     string   `json:"duration"`
	Salary       string   `json:"salary"`
	Deadline     string   `json:"deadline" binding:"required"`
	Status       string   `json:"status"`
	Description  string   `json:"description" binding:"required"`
	Requirements []string `json:"requirements"`
	Tags         []string `json:"tags"`
	URL          string   `json:"url"`
	IsRemote     bool     `json:"isRemote"`
}

func (r opportunityRequest) toDomain() (domain.Opportunity, error) {
	o := domain.Opportunity{
		Title:        strings.TrimSpace(r.Title),
		Organization: strings.TrimSpace(r.Organization),
		Type:         strings.TrimSpace(r.Type),
		Location:     strings.TrimSpace(r.Location),
		Duration:     strings.TrimSpace(r.Duration),
		Salary:       strings.TrimSpace(r.Salary),
		Deadline:     strings.TrimSpace(r.Deadline),
		Status:       strings.TrimSpace(r.Status),
		Description:  strings.TrimSpace(r.Description),
		Requirements: r.Requirements,
		Tags:         r.Tags,
		URL:          strings.TrimSpace(r.URL),
		IsRemote:     r.IsRemote,
	}
	if !domain.IsOpportunityType(o.Type) {
		return o, domain.Validation("type must be one of " + strings.Join(domain.OpportunityTypes(), ", "))
	}
	if o.Status != "" && !domain.IsOpportunityStatus(o.Status) {
		return o, domain.Validation("status must be one of open, closed, deadline-passed")
	}
	o.Normalize()
	return o, nil
}

// createOpportunity appends to the catalog. Listings are never edited or
// removed through the API.
func (s *Server) createOpportunity(c *gin.Context) {
	var req opportunityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	in, err := req.toDomain()
	if err != nil {
		respondError(c, err, "")
		return
	}
	opp, err := s.store.CreateOpportunity(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create opportunity")
		return
	}
	log.Printf("[api] added opportunity %d %q", opp.ID, opp.Title)
	c.JSON(http.StatusCreated, opp)
}
