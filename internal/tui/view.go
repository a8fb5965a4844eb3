package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/focusflow/internal/pomodoro"
	"github.com/julianstephens/focusflow/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.mode {
	case ModeStopwatch:
		content = m.viewStopwatch()
	default:
		content = m.viewPomodoro()
	}

	var status string
	if m.err != nil {
		status = dangerStyle.Render(m.status)
	} else if m.status != "" {
		status = successStyle.Render(m.status)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		"",
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, mode := range []Mode{ModePomodoro, ModeStopwatch} {
		if m.mode == mode {
			tabs = append(tabs, activeTabStyle.Render(mode.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(mode.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewPomodoro() string {
	accent := phaseColors["focus"]
	switch m.phase {
	case pomodoro.ShortBreak:
		accent = phaseColors["short"]
	case pomodoro.LongBreak:
		accent = phaseColors["long"]
	}

	state := "paused"
	if m.running {
		state = "running"
	}
	header := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(m.phase.String())
	clock := clockStyle.Foreground(accent).Render(utils.FormatClock(m.timer.Timeout))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		header+" "+mutedStyle.Render(state),
		clock,
		m.progress.ViewAs(m.percent()),
		mutedStyle.Render(fmt.Sprintf("%d pomodoro(s) completed · long break every %d", m.completedPomos, m.settings.PomosPerLongBreak)),
		m.viewLabel(),
	)
}

func (m Model) viewStopwatch() string {
	accent := phaseColors["watch"]
	state := "paused"
	if m.running {
		state = "running"
	}
	header := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("Stopwatch")
	clock := clockStyle.Foreground(accent).Render(utils.FormatClock(m.Elapsed()))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		header+" "+mutedStyle.Render(state),
		clock,
		mutedStyle.Render(fmt.Sprintf("Press s to stop and save. Runs under %s are discarded.", utils.FormatClock(pomodoro.MinStopwatchDuration))),
		m.viewLabel(),
	)
}

func (m Model) viewLabel() string {
	if m.label == "" {
		return ""
	}
	return mutedStyle.Render("Label: " + m.label)
}
