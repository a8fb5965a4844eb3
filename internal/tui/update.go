package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/logger"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/pomodoro"
	"github.com/julianstephens/focusflow/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-8, 60)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() || m.mode != ModePomodoro {
			return m, nil
		}
		return m.finishPhase(true)

	case tickMsg:
		if m.mode == ModeStopwatch && m.running {
			return m, tick()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.mode == ModeStopwatch {
			m = m.stopStopwatch()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()

	case key.Matches(msg, m.keys.Skip):
		if m.mode == ModeStopwatch {
			return m.stopStopwatch(), nil
		}
		return m.finishPhase(false)

	case key.Matches(msg, m.keys.Reset):
		if m.mode == ModeStopwatch {
			m.elapsed = 0
			m.running = false
		} else {
			m.setPhase(m.phase)
		}
		m.status = "Reset."
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		if m.running {
			m.status = "Pause the timer before switching modes."
			return m, nil
		}
		if m.mode == ModePomodoro {
			m.mode = ModeStopwatch
		} else {
			m.mode = ModePomodoro
		}
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	if m.mode == ModeStopwatch {
		if m.running {
			m.elapsed += m.now().Sub(m.startedAt)
			m.running = false
			return m, nil
		}
		m.startedAt = m.now()
		m.running = true
		return m, tick()
	}

	m.running = !m.running
	if m.running {
		return m, m.timer.Start()
	}
	return m, m.timer.Stop()
}

// finishPhase ends the current pomodoro phase. A focus block is recorded in
// full when it ran out, or for the time spent when skipped.
func (m Model) finishPhase(timedOut bool) (tea.Model, tea.Cmd) {
	ended := m.phase
	if ended == pomodoro.Focus {
		spent := m.phaseTotal
		if !timedOut {
			spent = m.phaseTotal - m.timer.Timeout
		}
		if spent > 0 {
			m.record(models.SessionPomodoro, spent)
		}
	}

	next := pomodoro.Next(ended, m.completedPomos, m.settings)
	m.completedPomos = next.CompletedPomos
	m.setPhase(next.Phase)
	if timedOut {
		m.notify(fmt.Sprintf("%s finished", ended), fmt.Sprintf("Up next: %s (%s)", next.Phase, utils.FormatClock(next.Duration)))
	}

	if next.AutoStart {
		m.running = true
		return m, m.timer.Start()
	}
	return m, nil
}

// stopStopwatch pauses the stopwatch and records it when it ran long enough.
func (m Model) stopStopwatch() Model {
	d := m.Elapsed()
	m.running = false
	m.elapsed = 0
	if d < pomodoro.MinStopwatchDuration {
		if d > 0 {
			m.status = fmt.Sprintf("Discarded %s (runs under %s are not saved).", utils.FormatClock(d), utils.FormatClock(pomodoro.MinStopwatchDuration))
		}
		return m
	}
	m.record(models.SessionStopwatch, d)
	return m
}

func (m *Model) record(kind models.SessionKind, d time.Duration) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordSession(kind, m.label, d, m.now()); err != nil {
		logger.Error("Failed to record session", "kind", kind, "error", err)
		m.err = err
		m.status = "Failed to save session: " + err.Error()
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("Saved %s session (+%.1fh).", utils.FormatClock(d), pomodoro.HoursFor(d))
}

func (m *Model) notify(title, body string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Notify(title, body); err != nil {
		logger.Warn("Timer notification failed", "error", err)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
