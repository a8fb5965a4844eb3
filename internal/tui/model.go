// Package tui is the interactive study timer: a Pomodoro cycle or a stopwatch.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/notifier"
	"github.com/julianstephens/focusflow/internal/pomodoro"
)

type Mode int

const (
	ModePomodoro Mode = iota
	ModeStopwatch
)

func (m Mode) String() string {
	if m == ModeStopwatch {
		return "Stopwatch"
	}
	return "Pomodoro"
}

// Recorder persists a finished run.
type Recorder interface {
	RecordSession(kind models.SessionKind, label string, d time.Duration, end time.Time) error
}

type Options struct {
	Settings models.TimerSettings
	Mode     Mode
	Label    string
	Recorder Recorder
	// Notifier is told when a phase ends. Optional.
	Notifier notifier.Notifier
	// Now defaults to time.Now.
	Now func() time.Time
}

type Model struct {
	keys     KeyMap
	help     help.Model
	progress progress.Model

	settings models.TimerSettings
	recorder Recorder
	notifier notifier.Notifier
	now      func() time.Time
	label    string

	mode    Mode
	running bool

	// pomodoro state
	timer          timer.Model
	phase          pomodoro.Phase
	phaseTotal     time.Duration
	completedPomos int

	// stopwatch state
	elapsed   time.Duration // accumulated before the current run
	startedAt time.Time

	status   string
	err      error
	width    int
	quitting bool
}

// tickMsg redraws the stopwatch.
type tickMsg time.Time

func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m := Model{
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		settings: opts.Settings,
		recorder: opts.Recorder,
		notifier: opts.Notifier,
		now:      opts.Now,
		label:    opts.Label,
		mode:     opts.Mode,
	}
	m.setPhase(pomodoro.Focus)
	return m
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// setPhase loads a fresh, stopped countdown for p.
func (m *Model) setPhase(p pomodoro.Phase) {
	m.phase = p
	m.phaseTotal = pomodoro.Duration(p, m.settings)
	m.timer = timer.NewWithInterval(m.phaseTotal, time.Second)
	m.running = false
}

// Remaining is the time left in the current pomodoro phase.
func (m Model) Remaining() time.Duration {
	return m.timer.Timeout
}

// Elapsed is the stopwatch time, including the current run.
func (m Model) Elapsed() time.Duration {
	if m.running && m.mode == ModeStopwatch {
		return m.elapsed + m.now().Sub(m.startedAt)
	}
	return m.elapsed
}

func (m Model) Phase() pomodoro.Phase { return m.phase }

func (m Model) CompletedPomos() int { return m.completedPomos }

func (m Model) Running() bool { return m.running }

func (m Model) Mode() Mode { return m.mode }

func (m Model) Status() string { return m.status }

func (m Model) Err() error { return m.err }

// percent is the share of the current phase already done.
func (m Model) percent() float64 {
	if m.phaseTotal <= 0 {
		return 0
	}
	done := float64(m.phaseTotal-m.timer.Timeout) / float64(m.phaseTotal)
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}
