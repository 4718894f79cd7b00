package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Garage palette
	Primary   = lipgloss.Color("#2563EB") // Service blue
	Secondary = lipgloss.Color("#60A5FA") // Light blue
	Accent    = lipgloss.Color("#F97316") // Safety orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F3F4F6") // Off-white
	BgDark    = lipgloss.Color("#111827") // Charcoal

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	NoticeSuccessStyle = lipgloss.NewStyle().
				Foreground(BgDark).
				Background(Success).
				Padding(0, 2).
				Bold(true)

	NoticeErrorStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Error).
				Padding(0, 2).
				Bold(true)
)

var statusColors = map[string]lipgloss.Color{
	"pending":   Warning,
	"confirmed": Success,
	"cancelled": Error,
	"completed": Primary,
}

// StatusStyle picks the badge style for a lower-cased status. Unknown
// statuses render muted.
func StatusStyle(class string) lipgloss.Style {
	color, ok := statusColors[class]
	if !ok {
		color = Muted
	}
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(color).
		Padding(0, 1).
		Bold(true)
}
