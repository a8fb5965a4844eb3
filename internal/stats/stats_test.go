package stats

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/models"
)

func sampleLogs() []models.StudyLog {
	return []models.StudyLog{
		{Date: calendar.MustParse("2026-10-12"), Hours: 2, ProjectID: "a"}, // Mon
		{Date: calendar.MustParse("2026-10-13"), Hours: 4, ProjectID: "a"}, // Tue
		{Date: calendar.MustParse("2026-10-17"), Hours: 3, ProjectID: "b"}, // Sat
		{Date: calendar.MustParse("2026-10-18"), Hours: 5, ProjectID: "a"}, // Sun
		{Date: calendar.MustParse("2026-10-18"), Hours: 1, ProjectID: "b"}, // Sun
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLogs())
	if s.Count != 5 || s.TotalHours != 15 {
		t.Errorf("count/total = %d/%v, want 5/15", s.Count, s.TotalHours)
	}
	if s.AverageHours != 3 {
		t.Errorf("average = %v, want 3", s.AverageHours)
	}
	if s.WeekdayAverage != 3 {
		t.Errorf("weekday average = %v, want 3", s.WeekdayAverage)
	}
	if s.WeekendAverage != 3 {
		t.Errorf("weekend average = %v, want 3", s.WeekendAverage)
	}

	if empty := Summarize(nil); empty != (Summary{}) {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestFrequency(t *testing.T) {
	freq := Frequency(sampleLogs())
	if len(freq) != 7 {
		t.Fatalf("expected 7 weekdays, got %d", len(freq))
	}
	if freq[0].Weekday != time.Sunday || freq[0].Hours != 6 || freq[0].Percent != 100 {
		t.Errorf("sunday = %+v", freq[0])
	}
	if freq[1].Hours != 2 || math.Abs(freq[1].Percent-100.0/3) > 1e-9 {
		t.Errorf("monday = %+v", freq[1])
	}
	if freq[3].Hours != 0 || freq[3].Percent != 0 {
		t.Errorf("wednesday = %+v", freq[3])
	}

	// Max is at least one hour so tiny totals are not inflated to 100%.
	small := Frequency([]models.StudyLog{{Date: calendar.MustParse("2026-10-12"), Hours: 0.5}})
	if small[1].Percent != 50 {
		t.Errorf("small monday percent = %v, want 50", small[1].Percent)
	}
}

func TestFilter(t *testing.T) {
	logs := sampleLogs()

	if got := Filter(logs, "a", calendar.Date{}, calendar.Date{}); len(got) != 3 {
		t.Errorf("project filter returned %d logs, want 3", len(got))
	}
	got := Filter(logs, "", calendar.MustParse("2026-10-13"), calendar.MustParse("2026-10-17"))
	if len(got) != 2 {
		t.Errorf("date filter returned %d logs, want 2", len(got))
	}
	if TotalHours(got) != 7 {
		t.Errorf("filtered total = %v, want 7", TotalHours(got))
	}
}

func TestRangeFrom(t *testing.T) {
	today := calendar.MustParse("2026-10-18")
	tests := map[Range]string{
		Last7Days:  "2026-10-11",
		Last30Days: "2026-09-18",
		ThisYear:   "2026-01-01",
	}
	for r, want := range tests {
		if got := r.From(today); got.String() != want {
			t.Errorf("%s.From = %s, want %s", r, got, want)
		}
	}
	if !AllTime.From(today).IsZero() {
		t.Error("all-time range should have no lower bound")
	}
}

func TestDailyTotals(t *testing.T) {
	from := calendar.MustParse("2026-10-16")
	to := calendar.MustParse("2026-10-18")
	got := DailyTotals(sampleLogs(), from, to)

	want := []float64{0, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Hours != w {
			t.Errorf("day %s = %v, want %v", got[i].Date, got[i].Hours, w)
		}
		if got[i].Date != from.AddDays(i) {
			t.Errorf("day %d = %s, want %s", i, got[i].Date, from.AddDays(i))
		}
	}

	if DailyTotals(nil, to, from) != nil {
		t.Error("expected nil for inverted range")
	}
}

func TestIntensity(t *testing.T) {
	tests := map[float64]int{0: 0, 0.5: 1, 2: 2, 4.5: 3, 6: 4, 12: 4}
	for hours, want := range tests {
		if got := Intensity(hours); got != want {
			t.Errorf("Intensity(%v) = %d, want %d", hours, got, want)
		}
	}
}
