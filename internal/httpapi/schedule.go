package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mlvisiotrack/internal/model"
	"mlvisiotrack/internal/schedule"
)

func (s *Server) handleAllSchedules(c *gin.Context) {
	schedules, err := s.deps.Schedules.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch schedule: "+err.Error())
		return
	}
	respondData(c, schedules)
}

func (s *Server) handleTodaySchedule(c *gin.Context) {
	ctx := c.Request.Context()
	day := s.now().Weekday().String()

	schedules, err := s.deps.Schedules.ListByDay(ctx, day)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch today's schedule: "+err.Error())
		return
	}
	lecturers, err := s.deps.Lecturers.Map(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch today's schedule: "+err.Error())
		return
	}

	schedule.SortByStart(schedules)
	out := make([]gin.H, 0, len(schedules))
	for _, item := range schedules {
		out = append(out, scheduleJSON(item, lecturers))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "day": day, "data": out})
}

func (s *Server) handleWeeklySchedule(c *gin.Context) {
	ctx := c.Request.Context()

	schedules, err := s.deps.Schedules.ListWeek(ctx, c.Query("department"), c.Query("year"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch schedule: "+err.Error())
		return
	}
	lecturers, err := s.deps.Lecturers.Map(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch schedule: "+err.Error())
		return
	}

	week := make(gin.H, len(schedule.Weekdays))
	for day, items := range schedule.GroupByDay(schedules) {
		out := make([]gin.H, 0, len(items))
		for _, item := range items {
			out = append(out, scheduleJSON(item, lecturers))
		}
		week[day] = out
	}
	respondData(c, week)
}

type scheduleRequest struct {
	Subject    string `json:"subject"`
	Department string `json:"department"`
	Day        string `json:"day"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Room       string `json:"room"`
	Lecturer   string `json:"lecturer"`
	Year       string `json:"year"`
}

func (r scheduleRequest) complete() bool {
	return r.Subject != "" && r.Department != "" && r.Day != "" &&
		r.StartTime != "" && r.EndTime != "" && r.Room != ""
}

func (s *Server) handleCreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.complete() {
		respondError(c, http.StatusBadRequest, "Missing required fields: subject, department, day, startTime, endTime, room")
		return
	}

	ctx := c.Request.Context()
	lecturerID := ""
	if req.Lecturer != "" {
		id, err := s.deps.Lecturers.FindIDByName(ctx, req.Lecturer)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
			return
		}
		lecturerID = id
	}

	item := model.Schedule{
		SubjectCode: req.Subject,
		DayOfWeek:   req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Room:        req.Room,
		Year:        req.Year,
		LecturerID:  lecturerID,
		Department:  req.Department,
	}
	id, err := s.deps.Schedules.Create(ctx, item)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	item.ID = id
	respondMessage(c, "Schedule created successfully", item)
}

func (s *Server) handleUpdateSchedule(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.deps.Schedules.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondMessage(c, "Schedule updated successfully", nil)
}

func (s *Server) handleDeleteSchedule(c *gin.Context) {
	if err := s.deps.Schedules.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to process request: "+err.Error())
		return
	}
	respondMessage(c, "Schedule deleted successfully", nil)
}

// scheduleJSON flattens a slot with its lecturer name resolved from the
// prefetched map, avoiding a lookup per row.
func scheduleJSON(s model.Schedule, lecturers map[string]model.Lecturer) gin.H {
	name := "Unknown Lecturer"
	if s.LecturerID == "" {
		name = ""
	} else if l, ok := lecturers[s.LecturerID]; ok {
		name = l.Name
	}
	return gin.H{
		"id":           s.ID,
		"subjectCode":  s.SubjectCode,
		"startTime":    s.StartTime,
		"endTime":      s.EndTime,
		"room":         s.Room,
		"year":         s.Year,
		"lecturerId":   s.LecturerID,
		"department":   s.Department,
		"lecturerName": name,
	}
}
