package schedule

import (
	"testing"

	"mlvisiotrack/internal/model"
)

func slot(day, start string) model.Schedule {
	return model.Schedule{DayOfWeek: day, StartTime: start}
}

func TestSortByStart(t *testing.T) {
	slots := []model.Schedule{slot("Monday", "13:00"), slot("Monday", "08:30"), slot("Monday", "10:00")}

	SortByStart(slots)

	want := []string{"08:30", "10:00", "13:00"}
	for i, w := range want {
		if slots[i].StartTime != w {
			t.Errorf("slots[%d].StartTime = %q, want %q", i, slots[i].StartTime, w)
		}
	}
}

func TestGroupByDay(t *testing.T) {
	slots := []model.Schedule{
		slot("Monday", "10:00"),
		slot("Monday", "08:00"),
		slot("Friday", "09:00"),
		slot("Someday", "11:00"), // unknown day is dropped
	}

	week := GroupByDay(slots)

	if len(week) != len(Weekdays) {
		t.Fatalf("len(week) = %d, want %d", len(week), len(Weekdays))
	}
	for _, day := range Weekdays {
		if _, ok := week[day]; !ok {
			t.Errorf("missing day key %q", day)
		}
	}
	if len(week["Monday"]) != 2 || week["Monday"][0].StartTime != "08:00" {
		t.Errorf("Monday = %v, want sorted pair", week["Monday"])
	}
	if len(week["Friday"]) != 1 {
		t.Errorf("Friday = %v", week["Friday"])
	}
	if len(week["Sunday"]) != 0 {
		t.Errorf("Sunday = %v, want empty", week["Sunday"])
	}
}
