package sim

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/keypad/internal/keypad"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - title, border
	SuccessColor = lipgloss.Color("#43BF6D") // Green - link up
	ErrorColor   = lipgloss.Color("#FF5555") // Red - link down, locked
	WarningColor = lipgloss.Color("#FFA500") // Orange - waiting
	MutedColor   = lipgloss.Color("#626262") // Gray - labels, dark LEDs
	TextColor    = lipgloss.Color("#FFFFFF") // White
)

const (
	ledOn  = "●"
	ledOff = "○"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	StripStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	ContainerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	offStyle = lipgloss.NewStyle().Foreground(MutedColor)
)

// modeStyle colors the mode label.
func modeStyle(m keypad.Mode) lipgloss.Style {
	switch m {
	case keypad.ModeLocked:
		return lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	case keypad.ModeWaiting:
		return lipgloss.NewStyle().Foreground(WarningColor)
	default:
		return lipgloss.NewStyle().Foreground(SuccessColor)
	}
}

// linkStyle colors the link label.
func linkStyle(up bool) lipgloss.Style {
	if up {
		return lipgloss.NewStyle().Foreground(SuccessColor)
	}
	return lipgloss.NewStyle().Foreground(ErrorColor)
}

// RenderLED draws one indicator in its own color.
func RenderLED(c keypad.RGB) string {
	if c.IsOff() {
		return offStyle.Render(ledOff)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(ledOn)
}

// RenderStrip draws the indicator strip.
func RenderStrip(f keypad.Frame) string {
	leds := make([]string, len(f))
	for i, c := range f {
		leds[i] = RenderLED(c)
	}
	return StripStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, joinSpaced(leds)...))
}

func joinSpaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
