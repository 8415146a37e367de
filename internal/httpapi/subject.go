package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleListSubjects(c *gin.Context) {
	ctx := c.Request.Context()

	subjects, err := s.deps.Subjects.List(ctx, c.Query("department"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch subjects: "+err.Error())
		return
	}
	lecturers, err := s.deps.Lecturers.Map(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch subjects: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(subjects))
	for _, sub := range subjects {
		item := gin.H{
			"id":           sub.ID,
			"courseCode":   sub.CourseCode,
			"courseName":   sub.CourseName,
			"semester":     sub.Semester,
			"credits":      sub.Credits,
			"department":   sub.Department,
			"isActive":     sub.IsActive,
			"lecturerId":   sub.LecturerID,
			"lecturerName": "No Lecturer Assigned",
		}
		if sub.LecturerID != "" {
			item["lecturerName"] = "Unknown Lecturer"
			if l, ok := lecturers[sub.LecturerID]; ok {
				item["lecturerName"] = l.Name
				item["lecturerEmail"] = l.Email
			}
		}
		out = append(out, item)
	}
	respondData(c, out)
}
