// Package api exposes the aggregator REST contract over gin, backed by
// the sqlite store. It exists so the terminal client has a complete
// local counterpart to develop against.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsdeck/stubserver/store"
)

// Server wires the controllers to the store and session table.
type Server struct {
	store    *store.Store
	sessions *sessionTable
}

// NewServer creates a Server over the given store.
func NewServer(s *store.Store) *Server {
	return &Server{store: s, sessions: newSessionTable()}
}

// NewRouter constructs a gin engine with all routes registered.
func (s *Server) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/auth/login", s.handleLogin)
	r.POST("/auth/register", s.handleRegister)

	authed := r.Group("/", s.requireAuth)
	authed.POST("/auth/logout", s.handleLogout)
	authed.GET("/auth/profile", s.handleProfile)
	authed.PUT("/auth/profile", s.handleUpdateProfile)
	authed.PUT("/auth/interests", s.handleUpdateInterests)
	authed.GET("/auth/stats", s.handleStats)

	authed.GET("/news/feed", s.handleFeed)
	authed.GET("/news/search", s.handleSearch)
	authed.GET("/news/articles/:id", s.handleArticle)
	authed.POST("/news/save", s.handleSave)
	authed.DELETE("/news/save/:id", s.handleUnsave)
	authed.GET("/news/saved", s.handleSaved)
	authed.DELETE("/news/saved/:id", s.handleUnsave)

	authed.GET("/stats/trending", s.handleTrending)

	return r
}

const (
	ctxUserID = "userID"
	ctxToken  = "token"
)

// requireAuth resolves the bearer token to a user ID or rejects the
// request. The error body is a bare string under "error", one of the
// shapes the client's message extraction handles.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	userID, ok := s.sessions.lookup(token)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}
	c.Set(ctxUserID, userID)
	c.Set(ctxToken, token)
	c.Next()
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// errorMessage writes the structured error shape: {"error":{"message":...}}.
func errorMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": gin.H{"message": msg}})
}
