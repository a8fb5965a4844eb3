package streak

import (
	"testing"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/models"
)

func logOn(day string, hours float64) models.StudyLog {
	return models.StudyLog{Date: calendar.MustParse(day), Hours: hours, ProjectID: "p1"}
}

func TestCompute(t *testing.T) {
	today := calendar.MustParse("2026-10-18")

	tests := []struct {
		name    string
		records []models.StudyLog
		want    Result
	}{
		{
			name: "empty",
			want: Result{0, 0},
		},
		{
			name:    "single record today",
			records: []models.StudyLog{logOn("2026-10-18", 2)},
			want:    Result{1, 1},
		},
		{
			name:    "single record yesterday is still alive",
			records: []models.StudyLog{logOn("2026-10-17", 2)},
			want:    Result{1, 1},
		},
		{
			name:    "latest activity two days ago is dead",
			records: []models.StudyLog{logOn("2026-10-15", 1), logOn("2026-10-16", 1)},
			want:    Result{0, 2},
		},
		{
			name: "gap resets the run",
			records: []models.StudyLog{
				logOn("2026-10-12", 1), // Mon
				logOn("2026-10-14", 1), // Wed
			},
			want: Result{0, 1},
		},
		{
			name: "zero hours are not active",
			records: []models.StudyLog{
				logOn("2026-10-16", 1),
				logOn("2026-10-17", 0),
				logOn("2026-10-18", 1),
			},
			want: Result{1, 1},
		},
		{
			name: "unsorted input with duplicates across projects",
			records: []models.StudyLog{
				logOn("2026-10-18", 1),
				{Date: calendar.MustParse("2026-10-18"), Hours: 3, ProjectID: "p2"},
				logOn("2026-10-16", 1),
				logOn("2026-10-17", 1),
			},
			want: Result{3, 3},
		},
		{
			name: "longest run in the past",
			records: []models.StudyLog{
				logOn("2026-09-01", 1),
				logOn("2026-09-02", 1),
				logOn("2026-09-03", 1),
				logOn("2026-09-04", 1),
				logOn("2026-10-17", 1),
				logOn("2026-10-18", 1),
			},
			want: Result{2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.records, today)
			if got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeEpochGap(t *testing.T) {
	// Active on days 1,2,3,5,6 relative to the epoch.
	var records []models.StudyLog
	for _, idx := range []int{1, 2, 3, 5, 6} {
		records = append(records, models.StudyLog{Date: calendar.FromDayIndex(idx), Hours: 1})
	}
	got := Compute(records, calendar.FromDayIndex(6))
	if got.Longest != 3 {
		t.Errorf("longest = %d, want 3", got.Longest)
	}
	if got.Current != 2 {
		t.Errorf("current = %d, want 2", got.Current)
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	start := calendar.MustParse("2026-01-01")
	var records []models.StudyLog
	for i := 0; i < 120; i++ {
		// Irregular pattern: skip every day divisible by 7 or 11.
		if i%7 == 0 || i%11 == 0 {
			continue
		}
		records = append(records, models.StudyLog{Date: start.AddDays(i), Hours: 1})
		for _, offset := range []int{0, 1, 2} {
			got := Compute(records, start.AddDays(i+offset))
			if got.Longest < got.Current {
				t.Fatalf("longest %d < current %d at day %d", got.Longest, got.Current, i)
			}
		}
	}
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	records := []models.StudyLog{logOn("2026-10-18", 1), logOn("2026-10-10", 1)}
	before := append([]models.StudyLog(nil), records...)

	first := Compute(records, calendar.MustParse("2026-10-18"))
	second := Compute(records, calendar.MustParse("2026-10-18"))
	if first != second {
		t.Errorf("results differ between calls: %+v vs %+v", first, second)
	}
	for i := range records {
		if records[i] != before[i] {
			t.Fatalf("record %d mutated", i)
		}
	}
}

func TestComputeForProject(t *testing.T) {
	today := calendar.MustParse("2026-10-18")
	records := []models.StudyLog{
		{Date: calendar.MustParse("2026-10-17"), Hours: 1, ProjectID: "a"},
		{Date: calendar.MustParse("2026-10-18"), Hours: 1, ProjectID: "a"},
		{Date: calendar.MustParse("2026-10-16"), Hours: 1, ProjectID: "b"},
	}

	if got := ComputeForProject(records, "a", today); got != (Result{2, 2}) {
		t.Errorf("project a = %+v, want {2 2}", got)
	}
	if got := ComputeForProject(records, "b", today); got != (Result{0, 1}) {
		t.Errorf("project b = %+v, want {0 1}", got)
	}
	if got := Compute(records, today); got != (Result{3, 3}) {
		t.Errorf("union = %+v, want {3 3}", got)
	}
}
