package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleAttendanceGoal(c *gin.Context) {
	goal, err := s.deps.Settings.AttendanceGoal(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch settings: "+err.Error())
		return
	}
	respondData(c, goal)
}
