package stats

import (
	"testing"

	"mlvisiotrack/internal/model"
)

func student(regNo, dept, mode string) model.User {
	return model.User{RegistrationNumber: regNo, Department: dept, Type: mode}
}

func present(regNo string) model.AttendanceRecord {
	return model.AttendanceRecord{RegistrationNumber: regNo, Status: model.StatusPresent}
}

func absent(regNo string) model.AttendanceRecord {
	return model.AttendanceRecord{RegistrationNumber: regNo, Status: model.StatusAbsent}
}

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, nil, 0)

	if got.TotalStudents != 0 || got.PresentToday != 0 || got.AbsentToday != 0 {
		t.Errorf("counts = %+v, want zeros", got)
	}
	if got.AttendanceRate != 0 {
		t.Errorf("AttendanceRate = %d, want 0 with no students", got.AttendanceRate)
	}
	if len(got.DepartmentAttendance) != len(model.Departments) {
		t.Fatalf("DepartmentAttendance = %v, want one entry per department", got.DepartmentAttendance)
	}
	for _, d := range got.DepartmentAttendance {
		if d.Rate != 0 {
			t.Errorf("rate for %s = %d, want 0 with no students", d.Department, d.Rate)
		}
	}
}

func TestComputeDeduplicatesStudents(t *testing.T) {
	students := []model.User{
		student("S1", "HNDIT", "Full Time"),
		student("S2", "HNDIT", "Full Time"),
	}
	// S1 checks in for two classes; S2 is marked absent twice.
	records := []model.AttendanceRecord{
		present("S1"), present("S1"),
		absent("S2"), absent("S2"),
	}

	got := Compute(students, records, 7)

	if got.PresentToday != 1 {
		t.Errorf("PresentToday = %d, want 1", got.PresentToday)
	}
	if got.AbsentToday != 1 {
		t.Errorf("AbsentToday = %d, want 1", got.AbsentToday)
	}
	if got.AttendanceRate != 50 {
		t.Errorf("AttendanceRate = %d, want 50", got.AttendanceRate)
	}
	if got.TotalCourses != 7 {
		t.Errorf("TotalCourses = %d, want 7", got.TotalCourses)
	}
}

func TestComputeDepartmentRates(t *testing.T) {
	students := []model.User{
		student("S1", "HNDIT", ""),
		student("S2", "HNDIT", ""),
		student("S3", "HNDA", ""),
	}
	records := []model.AttendanceRecord{
		present("S1"),
		present("S3"),
		present("S9"), // not an active student, ignored for department rates
	}

	got := Compute(students, records, 0)

	want := []DepartmentRate{
		{Department: "HNDA", Rate: 100},
		{Department: "HNDE", Rate: 0}, // no enrolled students
		{Department: "HNDIT", Rate: 50},
		{Department: "HNDM", Rate: 0},
	}
	if len(got.DepartmentAttendance) != len(want) {
		t.Fatalf("DepartmentAttendance = %v, want %v", got.DepartmentAttendance, want)
	}
	for i, w := range want {
		if got.DepartmentAttendance[i] != w {
			t.Errorf("DepartmentAttendance[%d] = %v, want %v", i, got.DepartmentAttendance[i], w)
		}
	}
}

func TestComputeStudyModes(t *testing.T) {
	students := []model.User{
		student("S1", "HNDIT", "Full Time"),
		student("S2", "HNDIT", "part time"),
		student("S3", "HNDIT", "Part Time"),
		student("S4", "HNDIT", "evening"), // unrecognized counts as full time
		student("S5", "HNDIT", ""),
	}

	got := Compute(students, nil, 0)

	if got.StudyModeCounts.FullTime != 3 {
		t.Errorf("FullTime = %d, want 3", got.StudyModeCounts.FullTime)
	}
	if got.StudyModeCounts.PartTime != 2 {
		t.Errorf("PartTime = %d, want 2", got.StudyModeCounts.PartTime)
	}
}

func TestComputeRateRounding(t *testing.T) {
	students := []model.User{
		student("S1", "HNDIT", ""),
		student("S2", "HNDIT", ""),
		student("S3", "HNDIT", ""),
	}
	records := []model.AttendanceRecord{present("S1"), present("S2")}

	got := Compute(students, records, 0)

	// 2/3 rounds to 67, not truncates to 66.
	if got.AttendanceRate != 67 {
		t.Errorf("AttendanceRate = %d, want 67", got.AttendanceRate)
	}
}
