package cli

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// heatmap palettes, lightest to darkest, indexed by intensity 1-4
var themePalettes = map[string][4]string{
	"green":  {"#9be9a8", "#40c463", "#30a14e", "#216e39"},
	"blue":   {"#bfdbfe", "#60a5fa", "#2563eb", "#1e3a8a"},
	"orange": {"#fed7aa", "#fb923c", "#ea580c", "#9a3412"},
	"purple": {"#e9d5ff", "#c084fc", "#9333ea", "#581c87"},
}

const emptyCellColor = "#2d333b"

// HeatCell renders one heatmap square for intensity 0-4 in the given theme.
func HeatCell(theme string, intensity int) string {
	color := emptyCellColor
	if intensity > 0 {
		palette, ok := themePalettes[theme]
		if !ok {
			palette = themePalettes["green"]
		}
		if intensity > 4 {
			intensity = 4
		}
		color = palette[intensity-1]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// Bar renders a horizontal progress bar of width cells for percent 0-100.
func Bar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
