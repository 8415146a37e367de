package schedule

import (
	"sort"

	"mlvisiotrack/internal/model"
)

// Weekdays in response order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SortByStart orders schedules by start time in place. HH:MM strings sort
// lexicographically.
func SortByStart(schedules []model.Schedule) {
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].StartTime < schedules[j].StartTime
	})
}

// GroupByDay buckets schedules per weekday, each bucket sorted by start
// time. Every weekday key is present even when empty; records with an
// unknown day value are dropped.
func GroupByDay(schedules []model.Schedule) map[string][]model.Schedule {
	week := make(map[string][]model.Schedule, len(Weekdays))
	for _, day := range Weekdays {
		week[day] = []model.Schedule{}
	}
	for _, s := range schedules {
		if _, ok := week[s.DayOfWeek]; ok {
			week[s.DayOfWeek] = append(week[s.DayOfWeek], s)
		}
	}
	for day := range week {
		SortByStart(week[day])
	}
	return week
}
