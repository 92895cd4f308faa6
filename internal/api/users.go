package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/events"
	"github.com/muhammadolammi/opportunitymatch/internal/profile"
)

// ownUserID returns the :id path parameter when it is the caller's own id.
// Other users' records are reported as missing.
func ownUserID(c *gin.Context) (int64, error) {
	id, err := pathID(c, "user")
	if err != nil {
		return 0, err
	}
	if uid, _ := callerID(c); uid != id {
		return 0, domain.NotFound("User not found")
	}
	return id, nil
}

func (s *Server) getUser(c *gin.Context) {
	id, err := ownUserID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}
	user, err := s.store.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, err := ownUserID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}
	var up domain.UserUpdate
	if err := bindJSON(c, &up); err != nil {
		respondError(c, err, "")
		return
	}
	if err := cleanUpdate(&up); err != nil {
		respondError(c, err, "")
		return
	}
	user, err := s.store.UpdateUser(c.Request.Context(), id, up)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// cleanUpdate trims the set fields and normalises the profile lists the same
// way the profile builder does.
func cleanUpdate(up *domain.UserUpdate) error {
	if up.Name != nil {
		name := strings.TrimSpace(*up.Name)
		if len([]rune(name)) < 2 {
			return domain.Validation("Name must be at least 2 characters")
		}
		up.Name = &name
	}
	for _, f := range []*string{up.Country, up.Education} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	p := profile.Normalize(domain.Profile{
		Skills:    deref(up.Skills),
		Interests: deref(up.Interests),
		Goals:     deref(up.Goals),
	})
	if up.Skills != nil {
		up.Skills = &p.Skills
	}
	if up.Interests != nil {
		up.Interests = &p.Interests
	}
	if up.Goals != nil {
		up.Goals = &p.Goals
	}
	return nil
}

func deref(v *[]string) []string {
	if v == nil {
		return nil
	}
	return *v
}

func (s *Server) userMatches(c *gin.Context) {
	id, err := ownUserID(c)
	if err != nil {
		respondError(c, err, "")
		return
	}
	matches, err := s.store.UserMatches(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load matches")
		return
	}
	c.JSON(http.StatusOK, matches)
}

// ownMatch loads the :id match when it belongs to the caller.
func (s *Server) ownMatch(c *gin.Context) (domain.UserMatch, error) {
	id, err := pathID(c, "match")
	if err != nil {
		return domain.UserMatch{}, err
	}
	m, err := s.store.GetUserMatch(c.Request.Context(), id)
	if err != nil {
		return domain.UserMatch{}, err
	}
	if uid, _ := callerID(c); m.UserID != uid {
		return domain.UserMatch{}, domain.NotFound("Match not found")
	}
	return m, nil
}

type saveMatchRequest struct {
	IsSaved *bool `json:"isSaved" binding:"required"`
}

func (s *Server) saveMatch(c *gin.Context) {
	m, err := s.ownMatch(c)
	if err != nil {
		respondError(c, err, "Failed to update match")
		return
	}
	var req saveMatchRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	m, err = s.store.SetMatchSaved(c.Request.Context(), m.ID, *req.IsSaved)
	if err != nil {
		respondError(c, err, "Failed to update match")
		return
	}
	s.publish(c, events.MatchSaved{
		UserID:        m.UserID,
		MatchID:       m.ID,
		OpportunityID: m.OpportunityID,
		IsSaved:       m.IsSaved,
		Timestamp:     s.now().UTC(),
	}.Event())
	c.JSON(http.StatusOK, m)
}

func (s *Server) deleteMatch(c *gin.Context) {
	m, err := s.ownMatch(c)
	if err != nil {
		respondError(c, err, "Failed to delete match")
		return
	}
	if err := s.store.DeleteUserMatch(c.Request.Context(), m.ID); err != nil {
		respondError(c, err, "Failed to delete match")
		return
	}
	c.Status(http.StatusNoContent)
}

// publish is best effort: a broker failure never changes the response.
func (s *Server) publish(c *gin.Context, ev events.Event) {
	if err := s.events.Publish(c.Request.Context(), ev); err != nil {
		log.Printf("[events] publish %s failed: %v", ev.Type, err)
	}
}
