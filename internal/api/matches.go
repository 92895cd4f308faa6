package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/events"
	"github.com/muhammadolammi/opportunitymatch/internal/present"
	"github.com/muhammadolammi/opportunitymatch/internal/profile"
)

const matchFailure = "Failed to calculate matches. Please try again."

type getMatchesRequest struct {
	UserID      *int64          `json:"userId"`
	UserProfile *domain.Profile `json:"userProfile"`
	Query       string          `json:"query"`
	Type        string          `json:"type"`
	Sort        string          `json:"sort"`
}

// getMatches ranks the catalog for the caller. A session identifies the user
// whose stored profile is used and whose results are recorded; without one a
// profile in the body is matched anonymously, even when a userId comes with
// it. A bare userId is not trusted.
func (s *Server) getMatches(c *gin.Context) {
	var req getMatchesRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	opts, err := present.ParseOptions(req.Query, req.Type, req.Sort)
	if err != nil {
		respondError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	uid, authed := callerID(c)
	var p domain.Profile
	switch {
	case authed:
		user, err := s.store.GetUser(ctx, uid)
		if err != nil {
			if domain.IsNotFound(err) {
				err = domain.NotFound("User profile not found")
			}
			respondError(c, err, matchFailure)
			return
		}
		p = profile.FromUser(user)
	case req.UserProfile != nil:
		p = profile.Normalize(*req.UserProfile)
	case req.UserID != nil:
		respondError(c, domain.Unauthorized("Log in to match against a stored profile"), "")
		return
	default:
		respondError(c, domain.Validation("User ID or profile is required"), "")
		return
	}

	catalog, err := s.store.AllOpportunities(ctx)
	if err != nil {
		respondError(c, err, matchFailure)
		return
	}

	var ranked []domain.AnnotatedOpportunity
	if authed {
		ranked, err = s.engine.MatchForUser(ctx, uid, &p, catalog)
	} else {
		ranked, err = s.engine.ComputeMatches(ctx, &p, catalog)
	}
	if err != nil {
		respondError(c, err, matchFailure)
		return
	}

	summary := present.Summarize(ranked)
	if authed {
		ev := events.MatchesComputed{
			UserID:       uid,
			TotalMatches: summary.Total,
			HighMatches:  summary.HighMatches,
			Timestamp:    s.now().UTC(),
		}
		if len(ranked) > 0 {
			ev.TopOpportunityID = ranked[0].ID
		}
		s.publish(c, ev.Event())
	}

	c.JSON(http.StatusOK, gin.H{
		"opportunities": present.Apply(ranked, opts),
		"totalMatches":  summary.Total,
		"highMatches":   summary.HighMatches,
	})
}
