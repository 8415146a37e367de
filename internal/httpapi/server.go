package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mlvisiotrack/internal/attendance"
	"mlvisiotrack/internal/config"
	"mlvisiotrack/internal/httpmiddleware"
	"mlvisiotrack/internal/model"
	"mlvisiotrack/internal/stats"
	"mlvisiotrack/internal/store"
	"mlvisiotrack/internal/user"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	List(ctx context.Context, f user.Filter) ([]model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Profile(ctx context.Context, idOrEmail string) (map[string]any, error)
	Create(ctx context.Context, fields map[string]any) (map[string]any, error)
	Update(ctx context.Context, id string, fields map[string]any) (map[string]any, error)
	SoftDelete(ctx context.Context, id string) error
	MapByRegistrationNumber(ctx context.Context) (map[string]model.User, error)
}

// AttendanceStore is the attendance repository surface.
type AttendanceStore interface {
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	ListByStudent(ctx context.Context, registrationNumber, startDate, endDate string) ([]model.AttendanceRecord, error)
	ListAllDesc(ctx context.Context, registrationNumber string) ([]model.AttendanceRecord, error)
	ListRange(ctx context.Context, registrationNumber, startDate, endDate string) ([]model.AttendanceRecord, error)
	Recent(ctx context.Context, limit int) ([]model.AttendanceRecord, error)
	Mark(ctx context.Context, in attendance.MarkInput) (model.AttendanceRecord, error)
}

// ScheduleStore is the schedule repository surface.
type ScheduleStore interface {
	ListActive(ctx context.Context) ([]model.Schedule, error)
	ListByDay(ctx context.Context, day string) ([]model.Schedule, error)
	ListWeek(ctx context.Context, department, year string) ([]model.Schedule, error)
	Create(ctx context.Context, s model.Schedule) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string) error
}

// SubjectStore lists subjects with the hierarchical-then-flat fallback.
type SubjectStore interface {
	List(ctx context.Context, department string) ([]model.Subject, error)
}

// LecturerStore is the lecturer repository surface.
type LecturerStore interface {
	List(ctx context.Context) ([]model.Lecturer, error)
	Map(ctx context.Context) (map[string]model.Lecturer, error)
	FindIDByName(ctx context.Context, name string) (string, error)
}

// SettingsStore reads application settings.
type SettingsStore interface {
	AttendanceGoal(ctx context.Context) (model.AttendanceGoal, error)
}

// StatsProvider assembles the dashboard aggregate.
type StatsProvider interface {
	Dashboard(ctx context.Context) (stats.Dashboard, error)
}

// Uploader pushes an image to the external host and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, image []byte) (string, error)
}

// Pinger reports backend reachability for the health endpoint.
type Pinger interface {
	Healthy(ctx context.Context) bool
}

// Deps bundles everything the API needs.
type Deps struct {
	Users      UserStore
	Attendance AttendanceStore
	Schedules  ScheduleStore
	Subjects   SubjectStore
	Lecturers  LecturerStore
	Settings   SettingsStore
	Stats      StatsProvider
	Uploader   Uploader
	DB         Pinger
	Cache      *store.Redis
}

// Server holds the handler dependencies.
type Server struct {
	cfg  config.App
	deps Deps
	now  func() time.Time
}

// NewServer creates the API server.
func NewServer(cfg config.App, deps Deps) *Server {
	return &Server{cfg: cfg, deps: deps, now: time.Now}
}

// Router assembles the gin engine with all middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders(s.cfg.Env))
	r.Use(httpmiddleware.NewTokenBucket(s.cfg.RateLimitPerMin, s.cfg.RateLimitPerMin).GinMiddleware())

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Endpoint not found")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", s.handleHealthz)

	api := r.Group("/api")
	{
		api.POST("/login", s.handleLogin)

		api.GET("/users/list", s.handleListUsers)
		api.GET("/users/profile/:id", s.handleUserProfile)
		api.POST("/users/create", s.handleCreateUser)
		api.PUT("/users/update/:id", s.handleUpdateUser)
		api.DELETE("/users/delete/:id", s.handleDeleteUser)

		api.GET("/attendance", s.handleAttendanceByDate)
		api.GET("/attendance/student", s.handleStudentAttendance)
		api.GET("/attendance/streak", s.handleAttendanceStreak)
		api.GET("/attendance/report", s.handleAttendanceReport)
		api.POST("/attendance/mark", s.handleMarkAttendance)

		api.GET("/schedule", s.handleAllSchedules)
		api.GET("/schedule/today", s.handleTodaySchedule)
		api.GET("/schedule/week", s.handleWeeklySchedule)
		api.POST("/schedule/create", s.handleCreateSchedule)
		api.PUT("/schedule/update/:id", s.handleUpdateSchedule)
		api.DELETE("/schedule/delete/:id", s.handleDeleteSchedule)

		api.GET("/subjects", s.handleListSubjects)
		api.GET("/lecturers", s.handleListLecturers)
		api.GET("/stats/dashboard", s.handleDashboardStats)
		api.GET("/settings/attendanceGoal", s.handleAttendanceGoal)
		api.GET("/activity/recent", s.handleRecentActivity)
		api.POST("/uploadProfilePicture", s.handleUploadProfilePicture)
	}

	return r
}

func (s *Server) handleHealthz(c *gin.Context) {
	ctx := c.Request.Context()
	dbHealthy := s.deps.DB != nil && s.deps.DB.Healthy(ctx)
	cacheHealthy := s.deps.Cache.Healthy(ctx)
	status := http.StatusOK
	if !dbHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": "ok", "firestore": dbHealthy, "redis": cacheHealthy})
}

// corsMiddleware mirrors the permissive policy the frontend relies on;
// OPTIONS preflights short-circuit with 200 before route matching.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func securityHeaders(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if env == "production" || env == "prod" {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
