package model

import "time"

// User is a document in the users collection. Students carry a registration
// number; admins carry an adminLevel instead.
type User struct {
	ID                 string     `json:"id" firestore:"-"`
	Name               string     `json:"name" firestore:"name"`
	Email              string     `json:"email" firestore:"email"`
	Password           string     `json:"-" firestore:"password"`
	RegistrationNumber string     `json:"registrationNumber" firestore:"registrationNumber"`
	Department         string     `json:"department" firestore:"department"`
	BirthDate          string     `json:"birthDate" firestore:"birthDate"`
	Year               string     `json:"year" firestore:"year"`
	Type               string     `json:"type" firestore:"type"`
	Role               string     `json:"role" firestore:"role"`
	AdminLevel         string     `json:"adminLevel" firestore:"adminLevel"`
	ProfilePicture     string     `json:"profilePicture" firestore:"profilePicture"`
	IsActive           bool       `json:"isActive" firestore:"isActive"`
	CreatedAt          time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
	DeletedAt          *time.Time `json:"deletedAt,omitempty" firestore:"deletedAt,omitempty"`
}

// Lecturer is immutable reference data.
type Lecturer struct {
	ID         string `json:"id" firestore:"-"`
	LecturerID string `json:"lecturerId" firestore:"lecturerId"`
	Name       string `json:"name" firestore:"name"`
	Email      string `json:"email" firestore:"email"`
	Department string `json:"department" firestore:"department"`
}

// Subject lives either under courses/{dept}/semesters/{sem}/subjects or in
// the flat subjects collection; both shapes share these fields.
type Subject struct {
	ID         string    `json:"id" firestore:"-"`
	CourseCode string    `json:"courseCode" firestore:"courseCode"`
	CourseName string    `json:"courseName" firestore:"courseName"`
	Semester   string    `json:"semester" firestore:"semester"`
	Credits    int64     `json:"credits" firestore:"credits"`
	Department string    `json:"department" firestore:"department"`
	LecturerID string    `json:"lecturerId" firestore:"lecturerId"`
	IsActive   bool      `json:"isActive" firestore:"isActive"`
	CreatedAt  time.Time `json:"-" firestore:"createdAt"`
}

// Schedule is a weekly class slot. Times are HH:MM strings so they sort
// lexicographically.
type Schedule struct {
	ID          string    `json:"id" firestore:"-"`
	SubjectCode string    `json:"subjectCode" firestore:"subjectCode"`
	DayOfWeek   string    `json:"dayOfWeek" firestore:"dayOfWeek"`
	StartTime   string    `json:"startTime" firestore:"startTime"`
	EndTime     string    `json:"endTime" firestore:"endTime"`
	Room        string    `json:"room" firestore:"room"`
	Year        string    `json:"year" firestore:"year"`
	LecturerID  string    `json:"lecturerId" firestore:"lecturerId"`
	Department  string    `json:"department" firestore:"department"`
	IsActive    bool      `json:"isActive" firestore:"isActive"`
	CreatedAt   time.Time `json:"-" firestore:"createdAt"`
}

// AttendanceRecord is keyed by the sanitized registrationNumber_date_subject
// composite id; marking twice for the same triple overwrites in place.
type AttendanceRecord struct {
	ID                 string    `json:"id" firestore:"-"`
	RegistrationNumber string    `json:"registrationNumber" firestore:"registrationNumber"`
	VertexLabel        string    `json:"vertexLabel" firestore:"vertexLabel"`
	SubjectCode        string    `json:"subjectCode" firestore:"subjectCode"`
	Status             string    `json:"status" firestore:"status"`
	Location           string    `json:"location" firestore:"location"`
	Date               string    `json:"date" firestore:"date"`
	Timestamp          time.Time `json:"timestamp" firestore:"timestamp"`
	Confidence         float64   `json:"confidence" firestore:"confidence"`
	StudentReview      string    `json:"studentReview" firestore:"studentReview"`
	ArrivalTime        string    `json:"arrivalTime,omitempty" firestore:"arrivalTime,omitempty"`
	Remarks            string    `json:"remarks,omitempty" firestore:"remarks,omitempty"`
	CreatedAt          time.Time `json:"-" firestore:"createdAt"`
}

// Attendance statuses.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"
)

// AttendanceGoal is the settings/attendanceGoal singleton.
type AttendanceGoal struct {
	RequiredPercentage int64  `json:"requiredPercentage" firestore:"requiredPercentage"`
	Description        string `json:"description" firestore:"description"`
}

// Departments is the fixed department universe used by the hierarchical
// subject store and the dashboard course count.
var Departments = []string{"HNDIT", "HNDA", "HNDM", "HNDE"}
