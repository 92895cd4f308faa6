package api

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/metrics"
	"github.com/muhammadolammi/opportunitymatch/internal/session"
)

const (
	sessionCookie = "sid"
	ctxUserID     = "userID"
	ctxSessionID  = "sessionID"
)

func observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// loadSession resolves the session cookie, if any, into the caller's user id.
// Unknown or expired sessions leave the request anonymous.
func (s *Server) loadSession(c *gin.Context) {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || sid == "" {
		c.Next()
		return
	}
	sess, err := s.sessions.Get(c.Request.Context(), sid)
	switch {
	case errors.Is(err, session.ErrNoSession):
		s.clearCookie(c)
	case err != nil:
		log.Printf("[api] session lookup failed: %v", err)
	default:
		c.Set(ctxUserID, sess.UserID)
		c.Set(ctxSessionID, sess.ID)
	}
	c.Next()
}

func requireAuth(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		respondError(c, domain.Unauthorized("Not authenticated"), "")
		return
	}
	c.Next()
}

func (s *Server) requireAdmin(c *gin.Context) {
	token := c.GetHeader("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.opts.AdminToken)) != 1 {
		respondError(c, domain.Unauthorized("Invalid admin token"), "")
		return
	}
	c.Next()
}

func callerID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func (s *Server) setSessionCookie(c *gin.Context, sess session.Session) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, int(s.opts.SessionTTL/time.Second), "/", "", s.opts.CookieSecure, true)
}

func (s *Server) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.opts.CookieSecure, true)
}

func pathID(c *gin.Context, what string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("Invalid " + what + " id")
	}
	return id, nil
}
