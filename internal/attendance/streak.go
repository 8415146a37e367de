package attendance

import (
	"time"

	"mlvisiotrack/internal/model"
)

// Streak counts the run of consecutive present days ending at the most
// recent record. The input must be ordered by date descending. The walk
// stops at the first non-present record or at the first gap of more than
// one calendar day; it does not skip and resume.
func Streak(records []model.AttendanceRecord) int {
	streak := 0
	previousDate := ""
	for _, rec := range records {
		if rec.Status != model.StatusPresent {
			break
		}
		if previousDate != "" && !isConsecutiveDay(rec.Date, previousDate) {
			break
		}
		streak++
		previousDate = rec.Date
	}
	return streak
}

// isConsecutiveDay reports whether current is exactly one calendar day
// before previous. Unparseable dates break the run.
func isConsecutiveDay(current, previous string) bool {
	cur, err := time.Parse("2006-01-02", current)
	if err != nil {
		return false
	}
	prev, err := time.Parse("2006-01-02", previous)
	if err != nil {
		return false
	}
	return cur.AddDate(0, 0, 1).Equal(prev)
}
