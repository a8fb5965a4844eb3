// Package pomodoro implements the focus/break cycle and stopwatch sessions of
// the study timer.
package pomodoro

import (
	"math"
	"strings"
	"time"

	"github.com/julianstephens/focusflow/internal/models"
)

type Phase int

const (
	Focus Phase = iota
	ShortBreak
	LongBreak
)

func (p Phase) String() string {
	switch p {
	case Focus:
		return "Focus Time"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// MinStopwatchDuration is the shortest stopwatch run that gets recorded.
const MinStopwatchDuration = time.Minute

// Transition describes the phase that follows a completed one.
type Transition struct {
	Phase          Phase
	Duration       time.Duration
	AutoStart      bool
	CompletedPomos int
}

// Duration returns the configured length of phase p.
func Duration(p Phase, s models.TimerSettings) time.Duration {
	switch p {
	case ShortBreak:
		return minutes(s.ShortBreakDuration)
	case LongBreak:
		return minutes(s.LongBreakDuration)
	default:
		return minutes(s.PomoDuration)
	}
}

// Next returns the phase after completed finishes. Finishing a focus block
// increments the pomodoro count and every PomosPerLongBreak-th block earns a
// long break. Any break returns to focus.
func Next(completed Phase, completedPomos int, s models.TimerSettings) Transition {
	if completed != Focus {
		return Transition{
			Phase:          Focus,
			Duration:       Duration(Focus, s),
			AutoStart:      s.AutoStartNextPomo,
			CompletedPomos: completedPomos,
		}
	}

	completedPomos++
	next := ShortBreak
	if s.PomosPerLongBreak > 0 && completedPomos%s.PomosPerLongBreak == 0 {
		next = LongBreak
	}
	return Transition{
		Phase:          next,
		Duration:       Duration(next, s),
		AutoStart:      s.AutoStartBreak,
		CompletedPomos: completedPomos,
	}
}

// HoursFor converts a duration to hours rounded to one decimal place.
func HoursFor(d time.Duration) float64 {
	return math.Round(d.Hours()*10) / 10
}

// NewSession builds the record of a finished timer run ending at end.
func NewSession(id string, kind models.SessionKind, label, projectID string, d time.Duration, end time.Time) models.Session {
	label = strings.TrimSpace(label)
	if label == "" {
		if kind == models.SessionStopwatch {
			label = "Stopwatch Session"
		} else {
			label = "Focus Session"
		}
	}
	return models.Session{
		ID:          id,
		Start:       end.Add(-d),
		End:         end,
		DurationSec: int(d / time.Second),
		Kind:        kind,
		Label:       label,
		ProjectID:   projectID,
	}
}

// MergeIntoLog adds a session's hours and label to the day's log. existing may
// be nil when nothing has been logged yet.
func MergeIntoLog(existing *models.StudyLog, hours float64, note string) (float64, string) {
	if existing == nil {
		return hours, note
	}
	notes := note
	if existing.Notes != "" {
		notes = existing.Notes + "; " + note
	}
	return existing.Hours + hours, notes
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
