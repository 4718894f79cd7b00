package ui

import (
	"time"

	"github.com/Varun5711/autocare/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type noticeTickMsg time.Time

func noticeTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return noticeTickMsg(t)
	})
}

func renderNotices(notices []notify.Notice) string {
	if len(notices) == 0 {
		return ""
	}

	lines := make([]string, 0, len(notices))
	for _, n := range notices {
		style := NoticeSuccessStyle
		icon := "✓ "
		if n.Kind == notify.KindError {
			style = NoticeErrorStyle
			icon = "✗ "
		}
		lines = append(lines, style.Render(icon+n.Text))
	}

	return lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Right).
		Render(lipgloss.JoinVertical(lipgloss.Right, lines...))
}
