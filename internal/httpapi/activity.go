package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/model"
)

const recentActivityLimit = 10

func (s *Server) handleRecentActivity(c *gin.Context) {
	records, err := s.deps.Attendance.Recent(c.Request.Context(), recentActivityLimit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		out = append(out, gin.H{
			"id":                 r.ID,
			"type":               activityType(r.Status),
			"registrationNumber": r.RegistrationNumber,
			"subjectCode":        r.SubjectCode,
			"details":            activityDetails(r),
			"timestamp":          r.Timestamp.Format(time.RFC3339),
		})
	}
	respondData(c, out)
}

func activityType(status string) string {
	if status == model.StatusPresent {
		return "check-in"
	}
	return "check-out"
}

func activityDetails(r model.AttendanceRecord) string {
	switch r.Status {
	case model.StatusPresent:
		return "Checked in for " + r.SubjectCode + " class"
	case model.StatusAbsent:
		return "Marked absent for " + r.SubjectCode + " class"
	default:
		return "Attendance recorded for " + r.SubjectCode + " class"
	}
}
