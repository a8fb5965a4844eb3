package models

import (
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
)

type SessionKind string

const (
	SessionPomodoro  SessionKind = "POMO"
	SessionStopwatch SessionKind = "STOPWATCH"
)

// Session is one completed timer run.
type Session struct {
	ID          string      `json:"id"`
	Start       time.Time   `json:"startTime"`
	End         time.Time   `json:"endTime"`
	DurationSec int         `json:"duration"`
	Kind        SessionKind `json:"type"`
	Label       string      `json:"label,omitempty"`
	ProjectID   string      `json:"projectId,omitempty"`
}

// TimerSettings configures the Pomodoro cycle. Durations are in minutes.
type TimerSettings struct {
	PomoDuration       int  `json:"pomoDuration"`
	ShortBreakDuration int  `json:"shortBreakDuration"`
	LongBreakDuration  int  `json:"longBreakDuration"`
	PomosPerLongBreak  int  `json:"pomosPerLongBreak"`
	AutoStartNextPomo  bool `json:"autoStartNextPomo"`
	AutoStartBreak     bool `json:"autoStartBreak"`
}

// DefaultTimerSettings returns the classic 25/5/15 cycle with a long break
// every four pomodoros.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		PomoDuration:       constants.DefaultPomoDuration,
		ShortBreakDuration: constants.DefaultShortBreakDuration,
		LongBreakDuration:  constants.DefaultLongBreakDuration,
		PomosPerLongBreak:  constants.DefaultPomosPerLongBreak,
	}
}
