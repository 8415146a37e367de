package stats

import (
	"context"
	"math"
	"sort"
	"strings"

	"mlvisiotrack/internal/model"
)

// Dashboard is the aggregate served by /api/stats/dashboard.
type Dashboard struct {
	TotalStudents        int              `json:"totalStudents"`
	PresentToday         int              `json:"presentToday"`
	AbsentToday          int              `json:"absentToday"`
	AttendanceRate       int              `json:"attendanceRate"`
	TotalCourses         int              `json:"totalCourses"`
	DepartmentAttendance []DepartmentRate `json:"departmentAttendance"`
	StudyModeCounts      StudyModeCounts  `json:"studyModeCounts"`
}

// DepartmentRate is one department's attendance rate for today.
type DepartmentRate struct {
	Department string `json:"department"`
	Rate       int    `json:"rate"`
}

// StudyModeCounts splits active students by study mode.
type StudyModeCounts struct {
	FullTime int `json:"fullTime"`
	PartTime int `json:"partTime"`
}

// StudentLister yields active students.
type StudentLister interface {
	ListActiveStudents(ctx context.Context) ([]model.User, error)
}

// AttendanceLister yields the attendance records of one date.
type AttendanceLister interface {
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
}

// SubjectCounter counts subjects across all departments.
type SubjectCounter interface {
	CountAll(ctx context.Context) (int, error)
}

// Service assembles the dashboard from the stores.
type Service struct {
	students   StudentLister
	attendance AttendanceLister
	subjects   SubjectCounter
	today      func() string
}

// NewService creates a dashboard service. today returns the server-local
// calendar date as YYYY-MM-DD and is injectable for tests.
func NewService(students StudentLister, attendance AttendanceLister, subjects SubjectCounter, today func() string) *Service {
	return &Service{students: students, attendance: attendance, subjects: subjects, today: today}
}

// Dashboard fetches today's inputs and aggregates them.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	students, err := s.students.ListActiveStudents(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	attendanceToday, err := s.attendance.ListByDate(ctx, s.today())
	if err != nil {
		return Dashboard{}, err
	}
	totalCourses, err := s.subjects.CountAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Compute(students, attendanceToday, totalCourses), nil
}

// Compute aggregates dashboard figures from today's inputs. Present and
// absent counts are deduplicated per student, so several class check-ins
// count once. Rates round to the nearest integer and are 0 for empty
// populations.
func Compute(students []model.User, attendanceToday []model.AttendanceRecord, totalCourses int) Dashboard {
	presentSeen := map[string]bool{}
	absentSeen := map[string]bool{}
	for _, rec := range attendanceToday {
		if rec.RegistrationNumber == "" {
			continue
		}
		switch rec.Status {
		case model.StatusPresent:
			presentSeen[rec.RegistrationNumber] = true
		case model.StatusAbsent:
			absentSeen[rec.RegistrationNumber] = true
		}
	}

	deptTotals := map[string]int{}
	deptByStudent := map[string]string{}
	modes := StudyModeCounts{}
	for _, u := range students {
		if u.Department != "" {
			deptTotals[u.Department]++
		}
		if u.RegistrationNumber != "" {
			deptByStudent[u.RegistrationNumber] = u.Department
		}
		if strings.EqualFold(u.Type, "Part Time") {
			modes.PartTime++
		} else {
			// Missing or unrecognized study modes count as full time.
			modes.FullTime++
		}
	}

	deptPresent := map[string]int{}
	for regNo := range presentSeen {
		if dept := deptByStudent[regNo]; dept != "" {
			deptPresent[dept]++
		}
	}

	// Every known department is reported, rate 0 when it has no students.
	departments := make([]DepartmentRate, 0, len(model.Departments))
	for _, dept := range model.Departments {
		departments = append(departments, DepartmentRate{
			Department: dept,
			Rate:       rate(deptPresent[dept], deptTotals[dept]),
		})
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Department < departments[j].Department
	})

	return Dashboard{
		TotalStudents:        len(students),
		PresentToday:         len(presentSeen),
		AbsentToday:          len(absentSeen),
		AttendanceRate:       rate(len(presentSeen), len(students)),
		TotalCourses:         totalCourses,
		DepartmentAttendance: departments,
		StudyModeCounts:      modes,
	}
}

// rate is round(present/total*100), 0 when total is 0.
func rate(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
