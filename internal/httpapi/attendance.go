package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/attendance"
	"mlvisiotrack/internal/model"
)

func (s *Server) handleAttendanceByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	records, err := s.deps.Attendance.ListByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		out = append(out, gin.H{
			"id":                 r.ID,
			"registrationNumber": r.RegistrationNumber,
			"status":             r.Status,
			"subjectCode":        r.SubjectCode,
			"timestamp":          r.Timestamp,
			"location":           r.Location,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "data": out})
}

func (s *Server) handleStudentAttendance(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, http.StatusBadRequest, "Student email is required")
		return
	}

	ctx := c.Request.Context()
	u, err := s.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}
	if u == nil {
		respondError(c, http.StatusNotFound, "Student not found")
		return
	}

	records, err := s.deps.Attendance.ListByStudent(ctx, u.RegistrationNumber, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		out = append(out, gin.H{
			"id":          r.ID,
			"date":        r.Date,
			"status":      r.Status,
			"subjectCode": r.SubjectCode,
			"arrivalTime": arrivalTime(r),
			"location":    r.Location,
			"confidence":  r.Confidence,
		})
	}
	respondMessage(c, fmt.Sprintf("Found %d attendance records for %s", len(out), email), out)
}

func (s *Server) handleAttendanceStreak(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respondError(c, http.StatusBadRequest, "Student email is required")
		return
	}

	ctx := c.Request.Context()
	u, err := s.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}
	if u == nil {
		respondError(c, http.StatusNotFound, "Student not found")
		return
	}

	records, err := s.deps.Attendance.ListAllDesc(ctx, u.RegistrationNumber)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}
	respondData(c, gin.H{"streak": attendance.Streak(records)})
}

func (s *Server) handleAttendanceReport(c *gin.Context) {
	ctx := c.Request.Context()

	regNo := ""
	if email := c.Query("email"); email != "" {
		u, err := s.deps.Users.GetByEmail(ctx, email)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
			return
		}
		if u == nil {
			respondError(c, http.StatusNotFound, "Student not found")
			return
		}
		regNo = u.RegistrationNumber
	}

	records, err := s.deps.Attendance.ListRange(ctx, regNo, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}
	students, err := s.deps.Users.MapByRegistrationNumber(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch attendance: "+err.Error())
		return
	}

	department := c.Query("department")
	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		info := gin.H{
			"name":               "Unknown Student",
			"email":              "unknown@example.com",
			"registrationNumber": r.RegistrationNumber,
			"department":         "Unknown",
		}
		if u, ok := students[r.RegistrationNumber]; ok {
			info["name"] = u.Name
			info["email"] = u.Email
			info["department"] = u.Department
		}
		if department != "" && info["department"] != department {
			continue
		}
		out = append(out, gin.H{
			"id":                 r.ID,
			"registrationNumber": r.RegistrationNumber,
			"studentInfo":        info,
			"date":               r.Date,
			"status":             r.Status,
			"subjectCode":        r.SubjectCode,
			"arrivalTime":        arrivalTime(r),
			"timestamp":          r.Timestamp,
			"location":           r.Location,
			"confidence":         r.Confidence,
		})
	}
	respondData(c, out)
}

func (s *Server) handleMarkAttendance(c *gin.Context) {
	var in attendance.MarkInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := s.deps.Attendance.Mark(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, attendance.ErrMissingFields) {
			respondError(c, http.StatusBadRequest, "Registration number and subject code are required")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondMessage(c, "Attendance marked successfully", rec)
}

// arrivalTime prefers the explicit field and falls back to the mark time;
// records written before the field existed render as a dash.
func arrivalTime(r model.AttendanceRecord) string {
	if r.ArrivalTime != "" {
		return r.ArrivalTime
	}
	if r.Timestamp.IsZero() {
		return "-"
	}
	return r.Timestamp.Format("15:04")
}
