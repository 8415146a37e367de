package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	u, err := s.deps.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}
	// Unknown email and wrong password are deliberately indistinguishable.
	if u == nil || !auth.CheckPassword(req.Password, u.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	role := u.Role
	if role == "" {
		role = "student"
	}
	token, err := auth.Issue(u.ID, u.Email, role, s.cfg.JWTIssuer, s.cfg.JWTSigningKey, s.cfg.TokenTTL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	respondMessage(c, "Login successful.", gin.H{
		"user": gin.H{
			"id":                 u.ID,
			"email":              u.Email,
			"name":               u.Name,
			"registrationNumber": u.RegistrationNumber,
			"department":         u.Department,
			"birthDate":          u.BirthDate,
			"year":               u.Year,
			"type":               u.Type,
			"role":               role,
			"joinDate":           u.CreatedAt,
		},
		"token": token,
	})
}
