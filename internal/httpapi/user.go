package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/user"
)

func (s *Server) handleListUsers(c *gin.Context) {
	f := user.Filter{
		Department: c.Query("department"),
		Role:       c.Query("role"),
	}
	users, err := s.deps.Users.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch users: "+err.Error())
		return
	}
	respondData(c, users)
}

func (s *Server) handleUserProfile(c *gin.Context) {
	profile, err := s.deps.Users.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch users: "+err.Error())
		return
	}
	if profile == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondData(c, profile)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email, _ := fields["email"].(string)
	password, _ := fields["password"].(string)
	if email == "" || password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	created, err := s.deps.Users.Create(c.Request.Context(), fields)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			respondError(c, http.StatusConflict, "User with this email already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondMessage(c, "User created successfully", created)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	updated, err := s.deps.Users.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondMessage(c, "User updated successfully", updated)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.deps.Users.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondMessage(c, "User deleted successfully", nil)
}
