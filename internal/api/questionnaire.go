package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/opportunitymatch/internal/profile"
)

func (s *Server) questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": profile.Questions()})
}

// questionnaire builds a profile from the answers and, for a logged-in
// caller, stores it on the user record.
func (s *Server) questionnaire(c *gin.Context) {
	var answers profile.Answers
	if err := bindJSON(c, &answers); err != nil {
		respondError(c, err, "")
		return
	}
	built, err := profile.FromAnswers(answers)
	if err != nil {
		respondError(c, err, "")
		return
	}
	if uid, ok := callerID(c); ok {
		if _, err := s.store.UpdateUser(c.Request.Context(), uid, profile.Update(built)); err != nil {
			log.Printf("[api] store questionnaire profile for user %d: %v", uid, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"profile": built})
}
