package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Country  string `json:"country" binding:"max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		respondError(c, domain.Validation("Name must be at least 2 characters"), "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		respondError(c, err, "Registration failed. Please try again.")
		return
	}
	user, err := s.store.CreateUser(c.Request.Context(), domain.NewUser{
		Email:        strings.TrimSpace(req.Email),
		Name:         name,
		Country:      strings.TrimSpace(req.Country),
		PasswordHash: string(hash),
	})
	if err != nil {
		respondError(c, err, "Registration failed. Please try again.")
		return
	}
	if err := s.startSession(c, user.ID); err != nil {
		respondError(c, err, "Registration failed. Please try again.")
		return
	}
	log.Printf("[api] registered user %d", user.ID)
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	user, err := s.store.GetUserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(c, err, "Login failed. Please try again.")
		return
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		respondError(c, domain.Unauthorized("Invalid email or password"), "")
		return
	}
	if err != nil {
		respondError(c, err, "Login failed. Please try again.")
		return
	}
	if err := s.startSession(c, user.ID); err != nil {
		respondError(c, err, "Login failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c *gin.Context) {
	if sid, ok := c.Get(ctxSessionID); ok {
		if err := s.sessions.Delete(c.Request.Context(), sid.(string)); err != nil {
			log.Printf("[api] delete session: %v", err)
		}
	}
	s.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) currentUser(c *gin.Context) {
	uid, _ := callerID(c)
	user, err := s.store.GetUser(c.Request.Context(), uid)
	if err != nil {
		if domain.IsNotFound(err) {
			err = domain.Unauthorized("Not authenticated")
		}
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) startSession(c *gin.Context, userID int64) error {
	sess, err := s.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, sess)
	return nil
}
