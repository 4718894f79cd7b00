package ui

import (
	"context"
	"strings"

	"github.com/Varun5711/autocare/internal/appointments"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ListModel struct {
	view    appointments.View
	cursor  int
	ctx     context.Context
	loader  *appointments.Refresher
	loading bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel() *ListModel {
	return &ListModel{ctx: context.Background()}
}

func (m *ListModel) SetRefresher(ctx context.Context, r *appointments.Refresher) {
	m.ctx = ctx
	m.loader = r
}

// SetView replaces the drawn list. The cursor is kept when it still points
// at a card.
func (m *ListModel) SetView(v appointments.View) {
	m.view = v
	m.loading = false
	if m.cursor >= len(v.Cards) {
		m.cursor = 0
	}
}

func (m *ListModel) Count() int {
	return len(m.view.Cards)
}

type refreshDoneMsg struct{}

func refreshCmd(ctx context.Context, r *appointments.Refresher) tea.Cmd {
	return func() tea.Msg {
		r.Refresh(ctx)
		return refreshDoneMsg{}
	}
}

// truncate shortens s to maxLen runes, ending in "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshDoneMsg:
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.view.Cards)-1 {
				m.cursor++
			}
		case "r":
			if !m.loading && m.loader != nil {
				m.loading = true
				return m, refreshCmd(m.ctx, m.loader)
			}
		}
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("MY APPOINTMENTS")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	if m.loading {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading appointments...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(1).Render(loading))
		b.WriteString("\n")
	}

	if !m.view.Visible {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 No appointments yet. Book one from the menu!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(1).Render(empty))
		b.WriteString("\n")
	} else {
		for i, card := range m.view.Cards {
			b.WriteString(centered(renderCard(card, i == m.cursor)))
		}
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  r refresh  •  esc back")
	b.WriteString(centered(help))

	return BoxStyle.Width(76).Render(b.String())
}

func renderCard(card appointments.Card, selected bool) string {
	border := Muted
	if selected {
		border = Accent
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Width(70).
		MarginBottom(1)

	title := lipgloss.NewStyle().Foreground(Primary).Bold(true).Render("🔧 " + card.Title)
	status := StatusStyle(card.StatusClass).Render(card.Status)
	titleLine := title + "  " + status

	vehicleLine := lipgloss.NewStyle().Foreground(Secondary).Render("🚗 ") +
		lipgloss.NewStyle().Foreground(Text).Render(card.Vehicle)

	whenLine := lipgloss.NewStyle().Foreground(Warning).Render("📅 ") +
		lipgloss.NewStyle().Foreground(Text).Render(card.Date+" at "+card.Time)

	descLine := lipgloss.NewStyle().Foreground(Muted).Render("📝 " + truncate(card.Description, 60))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleLine,
		vehicleLine,
		whenLine,
		descLine,
	))
}
