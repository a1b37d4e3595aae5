package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsdeck/stubserver/store"
	"newsdeck/types"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.store.UserByEmail(req.Email)
	if err != nil {
		errorMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		errorMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	access, refresh := s.sessions.issue(u.User.ID)
	c.JSON(http.StatusOK, types.AuthResponse{Token: access, RefreshToken: refresh, User: &u.User})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		errorMessage(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(req.Password) < 8 {
		errorMessage(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorMessage(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	u := store.StoredUser{
		User: types.User{
			ID:        uuid.NewString(),
			Email:     req.Email,
			Name:      req.Name,
			Interests: []string{},
		},
		PasswordHash: string(hash),
		JoinDate:     time.Now().UTC().Format("2006-01-02"),
	}
	if err := s.store.CreateUser(u); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			errorMessage(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		log.Printf("create user failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	access, refresh := s.sessions.issue(u.User.ID)
	c.JSON(http.StatusCreated, types.AuthResponse{Token: access, RefreshToken: refresh, User: &u.User})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.revoke(c.GetString(ctxToken))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) handleProfile(c *gin.Context) {
	u, err := s.store.UserByID(currentUserID(c))
	if err != nil {
		errorMessage(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, types.ProfileResponse{User: &u.User})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req types.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.store.UserByID(currentUserID(c))
	if err != nil {
		errorMessage(c, http.StatusNotFound, "User not found")
		return
	}
	if req.Name != nil {
		u.User.Name = *req.Name
	}
	if req.AvatarURL != nil {
		u.User.AvatarURL = *req.AvatarURL
	}
	if err := s.store.UpdateUser(u.User); err != nil {
		log.Printf("update user failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, types.ProfileResponse{User: &u.User})
}

func (s *Server) handleUpdateInterests(c *gin.Context) {
	var req types.InterestsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := s.store.UserByID(currentUserID(c))
	if err != nil {
		errorMessage(c, http.StatusNotFound, "User not found")
		return
	}
	if req.Interests == nil {
		req.Interests = []string{}
	}
	u.User.Interests = req.Interests
	if err := s.store.UpdateUser(u.User); err != nil {
		log.Printf("update interests failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to update interests")
		return
	}
	c.JSON(http.StatusOK, types.ProfileResponse{User: &u.User})
}

func (s *Server) handleStats(c *gin.Context) {
	userID := currentUserID(c)
	u, err := s.store.UserByID(userID)
	if err != nil {
		errorMessage(c, http.StatusNotFound, "User not found")
		return
	}

	saved, err := s.store.SavedArticles(userID)
	if err != nil {
		log.Printf("list saved failed: %v", err)
		errorMessage(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	var categories []string
	seen := map[string]bool{}
	for _, a := range saved {
		for _, cat := range a.Categories {
			if !seen[cat] {
				categories = append(categories, cat)
				seen[cat] = true
			}
		}
	}

	c.JSON(http.StatusOK, types.UserStats{
		SavedArticles: len(saved),
		Categories:    categories,
		JoinDate:      u.JoinDate,
	})
}
