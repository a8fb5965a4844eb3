package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/focusflow/internal/calendar"
	"github.com/julianstephens/focusflow/internal/models"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "UTC", timezone: "UTC"},
		{name: "Europe/London", timezone: "Europe/London"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone(t *testing.T) {
	now, err := NowInTimezone("Asia/Tokyo")
	if err != nil {
		t.Fatalf("NowInTimezone() error = %v", err)
	}
	if now.Location().String() != "Asia/Tokyo" {
		t.Errorf("location = %v, want Asia/Tokyo", now.Location())
	}
	if _, err := NowInTimezone("Nope/Nope"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestTodayIn(t *testing.T) {
	// 2026-01-01 20:00 UTC is already Jan 2 in Tokyo and still Jan 1 in New York.
	instant := time.Date(2026, time.January, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		timezone string
		want     string
	}{
		{"UTC", "2026-01-01"},
		{"Asia/Tokyo", "2026-01-02"},
		{"America/New_York", "2026-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			got, err := TodayIn(instant, tt.timezone)
			if err != nil {
				t.Fatalf("TodayIn() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("TodayIn() = %s, want %s", got, tt.want)
			}
		})
	}

	got, err := TodayFromSettings(instant, models.Settings{Timezone: "Asia/Tokyo"})
	if err != nil || got.String() != "2026-01-02" {
		t.Errorf("TodayFromSettings() = (%s, %v)", got, err)
	}
	if _, err := TodayIn(instant, "Bad/Zone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestCombineDateAndTime(t *testing.T) {
	est, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	day := mustDate(t, "2026-03-08") // US DST starts at 02:00

	got, err := CombineDateAndTime(day, "14:30", est)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 8 || got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("CombineDateAndTime() = %v", got)
	}
	if got.Location() != est {
		t.Errorf("location = %v, want %v", got.Location(), est)
	}

	for _, bad := range []string{"25:00", "2pm", ""} {
		if _, err := CombineDateAndTime(day, bad, est); err == nil {
			t.Errorf("CombineDateAndTime(%q) expected error", bad)
		}
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := map[string]bool{
		"00:00": true,
		"23:59": true,
		"9:05":  true,
		"24:00": false,
		"12:60": false,
		"noon":  false,
	}
	for input, want := range tests {
		if got := ValidateTimeFormat(input); got != want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := map[string]bool{
		"":                 true,
		"Local":            true,
		"UTC":              true,
		"Europe/London":    true,
		"Invalid/Timezone": false,
		"not-a-timezone":   false,
	}
	for input, want := range tests {
		if got := ValidateTimezone(input); got != want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{25 * time.Minute, "25:00"},
		{4*time.Minute + 59600*time.Millisecond, "05:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0m"},
		{-1, "0m"},
		{0.25, "15m"},
		{1, "1h"},
		{1.5, "1h 30m"},
		{12.1, "12h 6m"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.in); got != tt.want {
			t.Errorf("FormatHours(%g) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.Parse(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}
