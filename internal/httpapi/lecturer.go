package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListLecturers(c *gin.Context) {
	lecturers, err := s.deps.Lecturers.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch lecturers: "+err.Error())
		return
	}
	respondData(c, lecturers)
}
