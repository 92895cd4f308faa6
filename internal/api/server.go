// Package api is the HTTP surface of the service.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadolammi/opportunitymatch/internal/docstore"
	"github.com/muhammadolammi/opportunitymatch/internal/events"
	"github.com/muhammadolammi/opportunitymatch/internal/matching"
	"github.com/muhammadolammi/opportunitymatch/internal/metrics"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle"
	"github.com/muhammadolammi/opportunitymatch/internal/session"
	"github.com/muhammadolammi/opportunitymatch/internal/store"
)

// Options configure the HTTP layer.
type Options struct {
	AdminToken   string
	CookieSecure bool
	SessionTTL   time.Duration
	CORSOrigins  []string
	StaticDir    string
	// Backends is reported as is by /health.
	Backends map[string]string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type Server struct {
	store    store.Store
	sessions session.Store
	oracle   oracle.Oracle
	engine   *matching.Engine
	archive  docstore.Archive
	events   events.Publisher
	opts     Options
	now      func() time.Time
}

// NewServer wires the handlers. archive may be nil when the CV archive is
// disabled; a nil publisher drops events.
func NewServer(st store.Store, sessions session.Store, o oracle.Oracle, archive docstore.Archive, pub events.Publisher, opts Options) *Server {
	if pub == nil {
		pub = events.Noop{}
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	return &Server{
		store:    st,
		sessions: sessions,
		oracle:   o,
		engine:   matching.NewEngine(o, st),
		archive:  archive,
		events:   pub,
		opts:     opts,
		now:      time.Now,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), observe())

	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Accept", "Origin", "X-Requested-With", "X-Admin-Token"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api", s.loadSession)
	{
		api.POST("/analyze-cv", s.analyzeCV)
		api.POST("/get-matches", s.getMatches)
		api.POST("/chat", s.chat)

		api.GET("/opportunities", s.listOpportunities)
		api.GET("/opportunities/:id", s.getOpportunity)

		api.GET("/profile/questions", s.questions)
		api.POST("/profile/questionnaire", s.questionnaire)

		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.POST("/auth/logout", s.logout)
		api.GET("/auth/user", requireAuth, s.currentUser)

		owner := api.Group("", requireAuth)
		owner.GET("/users/:id", s.getUser)
		owner.PUT("/users/:id", s.updateUser)
		owner.GET("/users/:id/matches", s.userMatches)
		owner.PUT("/matches/:id/save", s.saveMatch)
		owner.DELETE("/matches/:id", s.deleteMatch)

		if s.opts.AdminToken != "" {
			api.POST("/admin/opportunities", s.requireAdmin, s.createOpportunity)
		}
	}

	r.NoRoute(s.notFound)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"backends": s.opts.Backends,
		"time":     s.now().UTC(),
	})
}

// notFound serves the browser bundle when one is configured, falling back to
// its index.html so client-side routes resolve.
func (s *Server) notFound(c *gin.Context) {
	path := c.Request.URL.Path
	if s.opts.StaticDir == "" || strings.HasPrefix(path, "/api/") || c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	file := filepath.Join(s.opts.StaticDir, filepath.FromSlash(filepath.Clean("/"+path)))
	if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
		c.File(file)
		return
	}
	c.File(filepath.Join(s.opts.StaticDir, "index.html"))
}
