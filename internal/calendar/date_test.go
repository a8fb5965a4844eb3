package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid date", input: "2026-01-15", want: Date{2026, time.January, 15}},
		{name: "leap day", input: "2024-02-29", want: Date{2024, time.February, 29}},
		{name: "impossible day", input: "2025-02-30", wantErr: true},
		{name: "non-leap feb 29", input: "2025-02-29", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "wrong layout", input: "15/01/2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("Parse(%q) error should wrap ErrInvalidDate, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDayIndex(t *testing.T) {
	if got := MustParse("1970-01-01").DayIndex(); got != 0 {
		t.Errorf("epoch day index = %d, want 0", got)
	}
	if got := MustParse("1970-01-02").DayIndex(); got != 1 {
		t.Errorf("epoch+1 day index = %d, want 1", got)
	}
	if got := MustParse("1969-12-31").DayIndex(); got != -1 {
		t.Errorf("epoch-1 day index = %d, want -1", got)
	}

	// Round trip across a wide range, including DST transition dates in most zones.
	start := MustParse("2024-01-01")
	for i := 0; i < 800; i++ {
		d := start.AddDays(i)
		if back := FromDayIndex(d.DayIndex()); back != d {
			t.Fatalf("round trip failed for %v: got %v", d, back)
		}
		if d.DayIndex() != start.DayIndex()+i {
			t.Fatalf("day index for %v not contiguous", d)
		}
	}
}

func TestAddDaysAcrossMonthAndYear(t *testing.T) {
	tests := []struct {
		from string
		n    int
		want string
	}{
		{"2026-01-31", 1, "2026-02-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2025-02-28", 1, "2025-03-01"},
		{"2025-12-31", 1, "2026-01-01"},
		{"2026-03-01", -1, "2026-02-28"},
		{"2026-03-29", 7, "2026-04-05"},
	}
	for _, tt := range tests {
		got := MustParse(tt.from).AddDays(tt.n)
		if got.String() != tt.want {
			t.Errorf("%s + %d = %s, want %s", tt.from, tt.n, got, tt.want)
		}
	}
}

func TestWeekday(t *testing.T) {
	if wd := MustParse("2026-01-05").Weekday(); wd != time.Monday {
		t.Errorf("2026-01-05 weekday = %v, want Monday", wd)
	}
	if wd := MustParse("2024-02-29").Weekday(); wd != time.Thursday {
		t.Errorf("2024-02-29 weekday = %v, want Thursday", wd)
	}
}

func TestCompare(t *testing.T) {
	a := MustParse("2026-01-01")
	b := MustParse("2026-01-02")
	if !a.Before(b) || a.After(b) {
		t.Error("expected a before b")
	}
	if !b.After(a) {
		t.Error("expected b after a")
	}
	if a.Compare(a) != 0 || !a.Equal(a) {
		t.Error("expected a equal to itself")
	}
	if DaysBetween(a, b) != 1 || DaysBetween(b, a) != -1 {
		t.Error("unexpected DaysBetween result")
	}
	if Max(a, b) != b {
		t.Error("Max should pick the later date")
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("DaysInMonth(2024, Feb) = %d, want 29", got)
	}
	if got := DaysInMonth(2025, time.February); got != 28 {
		t.Errorf("DaysInMonth(2025, Feb) = %d, want 28", got)
	}
	if got := DaysInMonth(2026, time.April); got != 30 {
		t.Errorf("DaysInMonth(2026, Apr) = %d, want 30", got)
	}

	if got := New(2026, time.February, 31); got.String() != "2026-03-03" {
		t.Errorf("New(2026, Feb, 31) = %s, want 2026-03-03", got)
	}
	if got := New(2025, time.December+1, 31); got.String() != "2026-01-31" {
		t.Errorf("New with month overflow = %s", got)
	}
}

func TestFromTimeUsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2026-01-01 20:00 UTC is already 2026-01-02 in UTC+10.
	ts := time.Date(2026, time.January, 1, 20, 0, 0, 0, time.UTC).In(loc)
	if got := FromTime(ts); got.String() != "2026-01-02" {
		t.Errorf("FromTime = %s, want 2026-01-02", got)
	}
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}
	data, err := json.Marshal(wrapper{Date: MustParse("2026-03-08")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"date":"2026-03-08"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"date":"2026-02-30"}`), &w); err == nil {
		t.Error("expected error unmarshaling impossible date")
	}
	if err := json.Unmarshal([]byte(`{"date":""}`), &w); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !w.Date.IsZero() {
		t.Errorf("expected zero date, got %v", w.Date)
	}
}
